package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eardo-app/eardo/backend/internal/config"
	"github.com/eardo-app/eardo/backend/internal/handler"
	"github.com/eardo-app/eardo/backend/internal/metrics"
	"github.com/eardo-app/eardo/backend/internal/model/voice"
	"github.com/eardo-app/eardo/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, continuing with system environment variables only", slog.Any("error", err))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.Speech.APIKey == "" {
		logger.Warn("ALIYUN_API_KEY 未配置，合成请求将被上游拒绝")
	}

	recorder := metrics.NewRecorder()
	client := speech.NewDashScopeClient(&cfg.Speech)
	speechService := speech.NewService(client, voice.NewMemoryStore(voice.Seed()),
		speech.WithLogger(logger),
		speech.WithMetrics(recorder),
	)
	logger.Info("speech service initialized",
		slog.String("model", client.Model()),
		slog.Duration("request_timeout", cfg.RequestTimeout()),
	)

	router := handler.NewRouter(speechService, handler.Options{
		RequestTimeout: cfg.RequestTimeout(),
		Metrics:        recorder,
		Logger:         logger,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Eardo backend listening", slog.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
