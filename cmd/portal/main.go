package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biztech/portal-bff-go/internal/config"
	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/handler"
	"github.com/biztech/portal-bff-go/internal/infra/cache"
	"github.com/biztech/portal-bff-go/internal/infra/coreapi"
	"github.com/biztech/portal-bff-go/internal/infra/observability"
	"github.com/biztech/portal-bff-go/internal/infra/resilience"
	"github.com/biztech/portal-bff-go/internal/service"
	"github.com/biztech/portal-bff-go/internal/settings"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("core_api_url", cfg.CoreAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("draft_ttl", cfg.DraftTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "portal-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	drafts := cache.New[*domain.ProposalDraft](cfg.DraftTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("core-api")

	// --- Core API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	core := coreapi.NewClient(httpClient, cfg.CoreAPIURL, cfg.CoreServiceKey, cb, resilienceCfg, metrics, logger)

	// --- Settings store ---
	settingsStore := settings.NewFileStore(cfg.SettingsPath)

	// --- Auth ---
	verifier := service.NewTokenVerifier(cfg.JWTSecret)

	// --- Services ---
	apiBase := core.BaseURL()
	svcs := handler.Services{
		Client:    service.NewClientViewService(core, core, core, core, metrics, logger, apiBase),
		Agent:     service.NewAgentViewService(core, core, core, core, metrics, logger, apiBase),
		Admin:     service.NewAdminViewService(core, core, core, settingsStore, drafts, metrics, logger, apiBase),
		Proposals: service.NewProposalService(core, drafts, metrics, logger),
		Notes:     service.NewNotesService(core, logger),
	}

	// --- Router ---
	router := handler.NewRouter(svcs, verifier, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
