package speech

// GenerateResponse 语音合成成功响应，Audio 为可直接播放的 data URI
type GenerateResponse struct {
	Audio string `json:"audio"`
}

// ErrorResponse 语音合成失败响应
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
