package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
)

const defaultRequestTimeoutSeconds = 60

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Speech   speechmodel.SpeechConfig
	LogLevel slog.Level
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel("LOG_LEVEL")
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Speech: speech, LogLevel: level}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadSpeechConfig() (speechmodel.SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_REQUEST_TIMEOUT")
	if err != nil {
		return speechmodel.SpeechConfig{}, err
	}
	timeoutSeconds := defaultRequestTimeoutSeconds
	if timeout != nil {
		if *timeout < 0 {
			return speechmodel.SpeechConfig{}, fmt.Errorf("invalid SPEECH_REQUEST_TIMEOUT value %d: must not be negative", *timeout)
		}
		timeoutSeconds = *timeout
	}

	// 优先使用 ALIYUN_API_KEY，兼容 DashScope SDK 的 DASHSCOPE_API_KEY
	apiKey := strings.TrimSpace(os.Getenv("ALIYUN_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("DASHSCOPE_API_KEY"))
	}

	return speechmodel.SpeechConfig{
		APIKey:         apiKey,
		Endpoint:       getEnvOrDefault("SPEECH_ENDPOINT", ""),
		Model:          getEnvOrDefault("SPEECH_MODEL", ""),
		RequestTimeout: timeoutSeconds,
	}, nil
}

// RequestTimeout 返回单次合成的截止时间，0 表示不限制。
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Speech.RequestTimeout) * time.Second
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(key string) (slog.Level, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return level, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
