package speech

import (
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// 音频 MIME 类型
const (
	MIMETypeMP3 = "audio/mp3"
	MIMETypeWAV = "audio/wav"
)

// InferMIMEType 按音频地址推断 MIME 类型：包含 ".mp3" 视为 mp3，否则一律按 wav 处理。
// 匹配区分大小写，且不解析 URL 结构。
func InferMIMEType(audioURL string) string {
	if strings.Contains(audioURL, ".mp3") {
		return MIMETypeMP3
	}
	return MIMETypeWAV
}

// EncodeDataURI 生成 data:{mime};base64,{payload} 形式的字符串。
func EncodeDataURI(mimeType string, data []byte) string {
	return dataurl.New(data, mimeType).String()
}
