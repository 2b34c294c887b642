package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eardo-app/eardo/backend/internal/handler/speech"
	"github.com/eardo-app/eardo/backend/internal/handler/voice"
	"github.com/eardo-app/eardo/backend/internal/metrics"
	middlewarePkg "github.com/eardo-app/eardo/backend/internal/middleware"
	speechService "github.com/eardo-app/eardo/backend/internal/service/speech"
)

// Options 路由可选依赖
type Options struct {
	// RequestTimeout 单次合成的截止时间，0 表示不限制
	RequestTimeout time.Duration
	Metrics        *metrics.Recorder
	Logger         *slog.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(speechSvc *speechService.Service, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		voice.New(speechSvc).RegisterRoutes(api)
		speech.New(speechSvc, opts.RequestTimeout, opts.Logger).RegisterRoutes(api)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	return r
}
