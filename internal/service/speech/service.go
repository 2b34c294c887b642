package speech

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/eardo-app/eardo/backend/internal/metrics"
	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
	"github.com/eardo-app/eardo/backend/internal/model/voice"
)

// Provider 合成服务依赖的上游能力
type Provider interface {
	Model() string
	Submit(ctx context.Context, payload ProviderPayload) (*ProviderResponse, error)
	Download(ctx context.Context, audioURL string) ([]byte, error)
}

var _ Provider = (*DashScopeClient)(nil)

// Service 语音服务核心业务逻辑
//
// 每次 GenerateAudio 调用相互独立，Service 本身不持有可变状态。
type Service struct {
	provider Provider
	voices   voice.Store
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

// ServiceOption 配置 Service
type ServiceOption func(*Service)

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics 设置监控指标
func WithMetrics(recorder *metrics.Recorder) ServiceOption {
	return func(s *Service) {
		s.metrics = recorder
	}
}

// NewService 创建语音服务实例
func NewService(provider Provider, voices voice.Store, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		voices:   voices,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "speech"))
	return s
}

// GenerateAudio 文字转语音，返回可直接播放的 data URI。
//
// 流程：构造请求 → 提交合成 → 检查业务错误 → 提取音频地址 → 下载 → 编码。
// 任一步失败立即返回对应的 SynthesisError，不做重试。
func (s *Service) GenerateAudio(ctx context.Context, req speechmodel.SynthesisRequest) (string, error) {
	logger := s.logger.With(
		slog.String("call_id", uuid.NewString()),
		slog.String("voice", req.VoiceID),
		slog.Int("text_len", len([]rune(req.Text))),
	)
	done := s.metrics.Start()

	audio, err := s.generate(ctx, logger, req)
	if err != nil {
		kind := ErrorKind(err)
		done(kind)
		logger.Warn("speech synthesis failed", slog.String("kind", kind), slog.Any("error", err))
		return "", err
	}

	done(metrics.OutcomeSuccess)
	return audio, nil
}

func (s *Service) generate(ctx context.Context, logger *slog.Logger, req speechmodel.SynthesisRequest) (string, error) {
	payload := BuildPayload(s.provider.Model(), req)

	resp, err := s.provider.Submit(ctx, payload)
	if err != nil {
		return "", err
	}

	if err := resp.Err(); err != nil {
		return "", err
	}

	audioURL, ok := resp.AudioURL().Get()
	if !ok {
		return "", &MissingAudioURLError{RequestID: lo.FromPtr(resp.RequestID)}
	}

	data, err := s.provider.Download(ctx, audioURL)
	if err != nil {
		return "", err
	}

	mimeType := InferMIMEType(audioURL)
	logger.Info("speech synthesized",
		slog.String("request_id", lo.FromPtr(resp.RequestID)),
		slog.String("mime", mimeType),
		slog.Int("bytes", len(data)),
	)

	return EncodeDataURI(mimeType, data), nil
}

// ListVoices 返回可选音色列表
func (s *Service) ListVoices(_ context.Context) ([]voice.Option, error) {
	if s.voices == nil {
		return []voice.Option{}, nil
	}
	return s.voices.List(), nil
}

// FindVoice 按 ID 查找音色，ID 区分大小写
func (s *Service) FindVoice(_ context.Context, id string) mo.Option[voice.Option] {
	if s.voices == nil {
		return mo.None[voice.Option]()
	}
	return mo.TupleToOption(s.voices.FindByID(id))
}
