package speech

import (
	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
)

const (
	// DefaultModel Qwen-TTS 非流式合成模型
	DefaultModel = "qwen3-tts-flash"

	// languageTypeAuto 让上游自动识别文本语种
	languageTypeAuto = "Auto"
)

// ProviderPayload DashScope 多模态生成接口的请求体
type ProviderPayload struct {
	Model string        `json:"model"`
	Input ProviderInput `json:"input"`
}

// ProviderInput 请求体中的 input 字段
type ProviderInput struct {
	Text         string `json:"text"`
	Voice        string `json:"voice"`
	LanguageType string `json:"language_type"`
}

// BuildPayload 将合成请求映射为上游请求体。
// 不做任何校验；Pitch/Speed/Emotion 直接丢弃。
func BuildPayload(model string, req speechmodel.SynthesisRequest) ProviderPayload {
	if model == "" {
		model = DefaultModel
	}

	return ProviderPayload{
		Model: model,
		Input: ProviderInput{
			Text:         req.Text,
			Voice:        req.VoiceID,
			LanguageType: languageTypeAuto,
		},
	}
}
