package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/orbitdeck/space-data-pipeline/internal/adapter/http"
	"github.com/orbitdeck/space-data-pipeline/internal/adapter/neows"
	"github.com/orbitdeck/space-data-pipeline/internal/adapter/spacetrack"
	"github.com/orbitdeck/space-data-pipeline/internal/config"
	"github.com/orbitdeck/space-data-pipeline/internal/fallback"
	"github.com/orbitdeck/space-data-pipeline/internal/observability"
	"github.com/orbitdeck/space-data-pipeline/internal/pipeline"
)

func main() {
	// Catalog credentials are supplied out of band; a local .env is one of
	// the supported channels. Absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if err := fallback.Verify(); err != nil {
		logger.Error("fallback datasets unreadable", "error", err)
		os.Exit(1)
	}
	metrics.Ready.Set(1)

	if cfg.CatalogUser == "" || cfg.CatalogPassword == "" {
		logger.Warn("catalog credentials not configured, catalog requests will serve mock data")
	}

	catalogClient := spacetrack.NewClient(
		cfg.CatalogBaseURL, cfg.CatalogUser, cfg.CatalogPassword,
		cfg.CatalogTimeout, cfg.MaxLimit, logger, metrics,
	)
	neoClient := neows.NewClient(cfg.NEOBaseURL, cfg.NEOAPIKey, cfg.NEOTimeout, logger, metrics)

	catalogSource := pipeline.NewCachedCatalogSource(catalogClient, cfg.CacheSize, cfg.CacheTTL, metrics)
	approachSource := pipeline.NewCachedApproachSource(neoClient, cfg.CacheSize, cfg.CacheTTL, metrics)

	service := pipeline.NewService(
		catalogSource, approachSource,
		"Space-Track", cfg.DefaultLimit, cfg.MaxLimit,
		logger, metrics,
	)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	metrics.Ready.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
