package speech

// SynthesisRequest 语音合成请求
//
// Pitch、Speed、Emotion 由前端传入，目前 DashScope 的 Qwen-TTS 模型不支持这些参数，
// 仅作保留，不会透传给上游。
type SynthesisRequest struct {
	Text    string  `json:"text"`
	VoiceID string  `json:"voiceId"`
	Pitch   float32 `json:"pitch"`
	Speed   float32 `json:"speed"`
	Emotion string  `json:"emotion"`
}
