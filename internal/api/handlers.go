// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"context"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/middleware"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers/sportsdb"
)

// EventAggregator is the aggregation engine as seen by the API.
type EventAggregator interface {
	Aggregate(ctx context.Context, q models.Query) *models.Result
	CoolingDown(provider string) bool
}

// SportsSource serves league fixtures and team data.
type SportsSource interface {
	Snapshot(ctx context.Context, sport string) (*models.LeagueSnapshot, error)
	LeagueEvents(ctx context.Context, sport string) ([]models.Event, error)
	SearchTeams(ctx context.Context, name string) ([]models.Team, error)
	AllSports(ctx context.Context) ([]sportsdb.Sport, error)
}

// WeatherSource serves current conditions and hourly forecasts.
type WeatherSource interface {
	Report(ctx context.Context, lat, lon float64, includeHourly bool, hours int) (*models.WeatherReport, error)
}

// StreamSource serves live streams for a game category.
type StreamSource interface {
	Streams(ctx context.Context, gameID string, first int) (*models.StreamsResponse, error)
}

// ProviderRegistry reports the registered event providers and the state of
// every circuit breaker.
type ProviderRegistry interface {
	Names() []string
	BreakerStates() map[string]string
}

// HandlerConfig holds the request defaults applied by the handlers.
type HandlerConfig struct {
	// DefaultLimit applies when /events has no limit parameter.
	DefaultLimit int
	// MaxLimit caps any requested limit.
	MaxLimit int
	Version  string
}

// Dependencies are the data sources behind the endpoints. Any of them may be
// nil; the matching endpoints then answer 503.
type Dependencies struct {
	Events    EventAggregator
	Sports    SportsSource
	Weather   WeatherSource
	Streams   StreamSource
	Providers ProviderRegistry
	Cache     cache.Cacher
}

// Handler serves the HTTP API.
type Handler struct {
	cfg       HandlerConfig
	events    EventAggregator
	sports    SportsSource
	weather   WeatherSource
	streams   StreamSource
	providers ProviderRegistry
	cache     cache.Cacher
	startTime time.Time
	perfMon   *middleware.PerformanceMonitor
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig, deps Dependencies) *Handler {
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.DefaultLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(20, cfg.MaxLimit)
	}
	return &Handler{
		cfg:       cfg,
		events:    deps.Events,
		sports:    deps.Sports,
		weather:   deps.Weather,
		streams:   deps.Streams,
		providers: deps.Providers,
		cache:     deps.Cache,
		startTime: time.Now(),
		perfMon:   middleware.NewPerformanceMonitor(1000),
	}
}

// PerformanceMonitor returns the monitor fed by the router's middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
