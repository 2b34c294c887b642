package voice

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/mo"

	"github.com/eardo-app/eardo/backend/internal/model/voice"
	"github.com/eardo-app/eardo/backend/pkg/utils"
)

// Catalog 音色目录查询
type Catalog interface {
	ListVoices(ctx context.Context) ([]voice.Option, error)
	FindVoice(ctx context.Context, id string) mo.Option[voice.Option]
}

// Handler 音色服务的HTTP处理器
type Handler struct {
	catalog Catalog
}

// New 创建音色处理器
func New(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes 注册音色相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voices", h.handleListVoices)
	r.Get("/voices/{voiceID}", h.handleGetVoice)
}

// handleListVoices 列出所有音色
func (h *Handler) handleListVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.catalog.ListVoices(r.Context())
	if err != nil {
		slog.Error("list voices failed", slog.Any("error", err))
		utils.RespondError(w, http.StatusInternalServerError, "failed to list voices")
		return
	}
	utils.RespondJSON(w, http.StatusOK, voices)
}

func (h *Handler) handleGetVoice(w http.ResponseWriter, r *http.Request) {
	found, ok := h.catalog.FindVoice(r.Context(), chi.URLParam(r, "voiceID")).Get()
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "voice not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, found)
}
