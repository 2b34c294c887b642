package speech

import (
	"strings"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
)

// resolveAPIKey 返回规范化后的 API Key。缺失时返回空字符串，由上游拒绝请求。
func resolveAPIKey(cfg *speechmodel.SpeechConfig) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.APIKey)
}
