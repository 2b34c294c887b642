package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
)

// DefaultEndpoint DashScope 多模态生成（非流式 TTS）接口
const DefaultEndpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/multimodal-generation/generation"

// DashScopeClient 阿里云百炼 TTS HTTP 客户端
//
// 客户端不保存任何单次调用的状态，可被并发调用。http.Client 不设置 Timeout，
// 调用耗时由调用方通过 context 控制。
type DashScopeClient struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// ClientOption 配置 DashScopeClient
type ClientOption func(*DashScopeClient)

// WithHTTPClient 替换底层 HTTP 客户端（测试或自定义连接池）
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *DashScopeClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewDashScopeClient 创建 DashScope 客户端
func NewDashScopeClient(config *speechmodel.SpeechConfig, opts ...ClientOption) *DashScopeClient {
	c := &DashScopeClient{
		apiKey:     resolveAPIKey(config),
		endpoint:   DefaultEndpoint,
		model:      DefaultModel,
		httpClient: &http.Client{},
	}

	if config != nil {
		if endpoint := strings.TrimSpace(config.Endpoint); endpoint != "" {
			c.endpoint = endpoint
		}
		if model := strings.TrimSpace(config.Model); model != "" {
			c.model = model
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model 返回提交时使用的模型名
func (c *DashScopeClient) Model() string {
	return c.model
}

// Submit 提交合成任务并解析响应体。
//
// 网络失败返回 *TransportError，非 2xx 返回 *UpstreamHTTPError，
// 响应体无法解析返回 *DecodeError。业务错误码不在此处判断，见 ProviderResponse.Err。
func (c *DashScopeClient) Submit(ctx context.Context, payload ProviderPayload) (*ProviderResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	var parsed ProviderResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &DecodeError{Cause: err}
	}

	return &parsed, nil
}

// Download 下载上游返回的临时音频文件，不附加额外请求头。
// 任何失败都返回 *AudioDownloadError。
func (c *DashScopeClient) Download(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, &AudioDownloadError{URL: audioURL, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AudioDownloadError{URL: audioURL, Cause: err}
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &AudioDownloadError{URL: audioURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AudioDownloadError{URL: audioURL, Cause: err}
	}

	return data, nil
}

func isSuccessStatus(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
