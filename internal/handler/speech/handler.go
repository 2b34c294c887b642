package speech

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	speechmodel "github.com/eardo-app/eardo/backend/internal/model/speech"
	speechsvc "github.com/eardo-app/eardo/backend/internal/service/speech"
	"github.com/eardo-app/eardo/backend/pkg/utils"
)

const synthesisFailedMessage = "speech synthesis failed"

// SpeechService 抽象语音业务，便于测试与替换实现
type SpeechService interface {
	GenerateAudio(ctx context.Context, req speechmodel.SynthesisRequest) (string, error)
}

// Handler 语音服务的HTTP处理器
type Handler struct {
	speechSvc SpeechService
	timeout   time.Duration
	logger    *slog.Logger
}

// New 创建语音处理器。timeout 为单次合成的截止时间，0 表示不限制。
func New(speechSvc SpeechService, timeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		speechSvc: speechSvc,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "speech_handler")),
	}
}

// RegisterRoutes 注册语音相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/speech", func(speechRouter chi.Router) {
		speechRouter.Post("/generate", h.handleGenerate)
		speechRouter.Get("/health", h.handleHealth)

		wsHandler := NewWebSocketHandler(h)
		wsHandler.RegisterWebSocketRoutes(speechRouter)
	})
}

// handleGenerate 处理文本转语音请求
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req speechmodel.SynthesisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := h.generate(r.Context(), req)
	if err != nil {
		kind := speechsvc.ErrorKind(err)
		h.logger.Error("generate audio failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		utils.RespondJSON(w, statusForError(err), speechmodel.ErrorResponse{
			Error: synthesisFailedMessage,
			Kind:  kind,
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, speechmodel.GenerateResponse{Audio: audio})
}

// generate 在配置的截止时间内执行一次合成
func (h *Handler) generate(ctx context.Context, req speechmodel.SynthesisRequest) (string, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return h.speechSvc.GenerateAudio(ctx, req)
}

// handleHealth 健康检查端点
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "speech",
	})
}

// statusForError 将合成错误映射为 HTTP 状态码
func statusForError(err error) int {
	var businessErr *speechsvc.UpstreamBusinessError
	if errors.As(err, &businessErr) {
		return http.StatusUnprocessableEntity
	}

	var transportErr *speechsvc.TransportError
	if errors.As(err, &transportErr) && errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	return http.StatusBadGateway
}
