package speech

// SpeechConfig 语音服务配置
type SpeechConfig struct {
	// DashScope 配置
	APIKey   string `json:"-"`        // 百炼 API Key，缺失时以空值提交，由上游拒绝
	Endpoint string `json:"endpoint"` // 合成接口地址
	Model    string `json:"model"`    // 合成模型

	// 调用方超时（秒），0 表示不设置
	RequestTimeout int `json:"requestTimeout"`
}
