package speech

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ProviderResponse DashScope 合成接口的响应体
type ProviderResponse struct {
	Code      *string         `json:"code,omitempty"`
	Message   *string         `json:"message,omitempty"`
	RequestID *string         `json:"request_id,omitempty"`
	Output    *providerOutput `json:"output,omitempty"`
}

type providerOutput struct {
	Audio *providerAudio `json:"audio,omitempty"`
}

type providerAudio struct {
	URL *string `json:"url,omitempty"`
}

// Err 在响应携带非空错误码时返回 *UpstreamBusinessError。
func (r *ProviderResponse) Err() error {
	if r == nil {
		return nil
	}

	code := lo.FromPtr(r.Code)
	if code == "" {
		return nil
	}

	return &UpstreamBusinessError{
		Code:      code,
		Message:   lo.FromPtr(r.Message),
		RequestID: lo.FromPtr(r.RequestID),
	}
}

// AudioURL 返回临时音频地址。output、audio、url 任一层缺失或为空时返回 None。
func (r *ProviderResponse) AudioURL() mo.Option[string] {
	if r == nil || r.Output == nil || r.Output.Audio == nil {
		return mo.None[string]()
	}

	url := lo.FromPtr(r.Output.Audio.URL)
	if url == "" {
		return mo.None[string]()
	}
	return mo.Some(url)
}
