package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/vincent-petithory/dataurl"

	"github.com/eardo-app/eardo/backend/internal/config"
	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
	"github.com/eardo-app/eardo/backend/internal/model/voice"
	"github.com/eardo-app/eardo/backend/internal/service/speech"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := godotenv.Load(); err != nil {
		logger.Warn("无法加载 .env，改用系统环境变量", slog.Any("error", err))
	}

	text := flag.String("text", "", "TTS 输入文本")
	voiceID := flag.String("voice", "Cherry", "音色 ID")
	outputPath := flag.String("out", "", "输出音频文件路径 (默认根据格式自动生成)")
	timeout := flag.Duration("timeout", 45*time.Second, "请求超时时间")

	flag.Parse()

	if strings.TrimSpace(*text) == "" {
		flag.Usage()
		fatal(logger, "请通过 -text 指定要合成的文本", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(logger, "配置加载失败", err)
	}
	if cfg.Speech.APIKey == "" {
		logger.Warn("ALIYUN_API_KEY 未配置，请求可能被拒绝")
	}

	svc := speech.NewService(
		speech.NewDashScopeClient(&cfg.Speech),
		voice.NewMemoryStore(voice.Seed()),
		speech.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	uri, err := svc.GenerateAudio(ctx, speechmodel.SynthesisRequest{Text: *text, VoiceID: *voiceID})
	if err != nil {
		fatal(logger, "语音合成失败", err, slog.String("kind", speech.ErrorKind(err)))
	}

	path, size, err := writeAudio(uri, *outputPath)
	if err != nil {
		fatal(logger, "写入音频失败", err)
	}

	logger.Info("语音合成完成",
		slog.String("file", path),
		slog.Int("bytes", size),
		slog.Duration("elapsed", time.Since(start)),
	)
}

// writeAudio 解码 data URI 并写入文件，返回实际路径和字节数
func writeAudio(uri, outputPath string) (string, int, error) {
	decoded, err := dataurl.DecodeString(uri)
	if err != nil {
		return "", 0, fmt.Errorf("decode data uri: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultOutputName(decoded.ContentType())
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", 0, err
		}
	}

	if err := os.WriteFile(outputPath, decoded.Data, 0o644); err != nil {
		return "", 0, err
	}
	return outputPath, len(decoded.Data), nil
}

func defaultOutputName(contentType string) string {
	ext := strings.TrimPrefix(contentType, "audio/")
	if ext == "" || ext == contentType {
		ext = "bin"
	}
	return fmt.Sprintf("speech-%s.%s", uuid.NewString(), ext)
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.Error(msg, attrs...)
	os.Exit(1)
}
