package speech

import (
	"errors"
	"fmt"
)

// 错误类型标识，同时用作日志字段与监控指标的 outcome 标签。
const (
	KindTransport        = "transport"
	KindUpstreamHTTP     = "upstream_http"
	KindDecode           = "decode"
	KindUpstreamBusiness = "upstream_business"
	KindMissingAudioURL  = "missing_audio_url"
	KindAudioDownload    = "audio_download"

	// KindUnknown 标记不属于合成流程的错误。
	KindUnknown = "unknown"
)

// SynthesisError 是合成流程中各步骤失败时返回的错误。
type SynthesisError interface {
	error
	Kind() string
}

var (
	_ SynthesisError = (*TransportError)(nil)
	_ SynthesisError = (*UpstreamHTTPError)(nil)
	_ SynthesisError = (*DecodeError)(nil)
	_ SynthesisError = (*UpstreamBusinessError)(nil)
	_ SynthesisError = (*MissingAudioURLError)(nil)
	_ SynthesisError = (*AudioDownloadError)(nil)
)

// ErrorKind 返回错误对应的类型标识，nil 返回空字符串。
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var synthErr SynthesisError
	if errors.As(err, &synthErr) {
		return synthErr.Kind()
	}
	return KindUnknown
}

// TransportError 提交合成请求时网络层失败（DNS、连接、超时、取消）。
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submit synthesis request: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func (e *TransportError) Kind() string { return KindTransport }

// UpstreamHTTPError 合成接口返回非 2xx 状态码，Body 保留原始响应用于排查。
type UpstreamHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("synthesis API HTTP error %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamHTTPError) Kind() string { return KindUpstreamHTTP }

// DecodeError 合成接口响应体无法解析。
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parse synthesis response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Kind() string { return KindDecode }

// UpstreamBusinessError HTTP 200 但响应体中携带了非空错误码。
type UpstreamBusinessError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *UpstreamBusinessError) Error() string {
	return fmt.Sprintf("DashScope error %s: %s", e.Code, e.Message)
}

func (e *UpstreamBusinessError) Kind() string { return KindUpstreamBusiness }

// MissingAudioURLError 响应中没有音频地址。
type MissingAudioURLError struct {
	RequestID string
}

func (e *MissingAudioURLError) Error() string {
	if e.RequestID != "" {
		return "no audio URL found in response (request_id " + e.RequestID + ")"
	}
	return "no audio URL found in response"
}

func (e *MissingAudioURLError) Kind() string { return KindMissingAudioURL }

// AudioDownloadError 合成成功但下载临时音频文件失败。
// 状态码失败时 StatusCode 非零，网络失败时 Cause 非空。
type AudioDownloadError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *AudioDownloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("download audio failed: %v", e.Cause)
	}
	return fmt.Sprintf("download audio failed: HTTP %d", e.StatusCode)
}

func (e *AudioDownloadError) Unwrap() error { return e.Cause }

func (e *AudioDownloadError) Kind() string { return KindAudioDownload }
