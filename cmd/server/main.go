// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/eventscope/docs" // Import generated swagger docs
	"github.com/tomtom215/eventscope/internal/config"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/supervisor"
	"github.com/tomtom215/eventscope/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Version:   version,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Interface("providers", cfg.ProviderSummary()).
		Msg("Starting Eventscope with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* in production allows any site to query this API")
	}
	if !cfg.SerpAPI.Enabled() && !cfg.Scraper.Enabled() {
		logging.Warn().Msg("Neither SERPAPI_API_KEY nor SCRAPERAPI_API_KEY is set; /events will only serve empty results")
	}

	app := buildApplication(cfg)

	// The zerolog-backed slog logger lets sutureslog share our log format
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           app.router,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree.AddMaintenanceService(app.cache)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
