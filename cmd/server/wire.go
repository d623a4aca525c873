// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package main

import (
	"net/http"

	"github.com/tomtom215/eventscope/internal/aggregate"
	"github.com/tomtom215/eventscope/internal/api"
	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/config"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/providers"
	"github.com/tomtom215/eventscope/internal/providers/scraper"
	"github.com/tomtom215/eventscope/internal/providers/serpapi"
	"github.com/tomtom215/eventscope/internal/providers/sportsdb"
	"github.com/tomtom215/eventscope/internal/providers/twitch"
	"github.com/tomtom215/eventscope/internal/providers/weather"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// application holds everything main needs to supervise.
type application struct {
	cache   *cache.Cache
	handler *api.Handler
	router  http.Handler
}

// buildApplication wires the shared cache, every provider client, the
// aggregation engine and the HTTP router from cfg. It performs no I/O.
func buildApplication(cfg *config.Config) *application {
	shared := cache.NewWithOptions(cache.Options{
		Name:            "shared",
		DefaultTTL:      cfg.Cache.DefaultTTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
		SingleFlight:    cfg.Cache.SingleFlight,
	})

	registry := providers.NewRegistry()
	breakerSettings := providers.BreakerSettings{
		MaxRequests:  cfg.Breaker.MaxRequests,
		Interval:     cfg.Breaker.Interval,
		Timeout:      cfg.Breaker.Timeout,
		MinRequests:  cfg.Breaker.MinRequests,
		FailureRatio: cfg.Breaker.FailureRatio,
	}
	breaker := func(name string) *providers.Breaker {
		b := providers.NewBreaker(name, breakerSettings)
		registry.AddBreaker(b)
		return b
	}

	geocoder := geo.NewCachedGeocoder(geo.NewNominatimClient(geo.NominatimConfig{
		BaseURL:           cfg.Geocoder.BaseURL,
		UserAgent:         cfg.Geocoder.UserAgent,
		Timeout:           cfg.Geocoder.Timeout,
		RequestsPerSecond: cfg.Geocoder.RequestsPerSecond,
	}), shared)

	primary := providers.Instrument(serpapi.New(serpapi.Config{
		APIKey:  cfg.SerpAPI.APIKey,
		BaseURL: cfg.SerpAPI.BaseURL,
		HL:      cfg.SerpAPI.HL,
		GL:      cfg.SerpAPI.GL,
		Timeout: cfg.SerpAPI.Timeout,
		Breaker: breaker(serpapi.Name),
	}, shared, geocoder))
	fallback := providers.Instrument(scraper.New(scraper.Config{
		APIKey:  cfg.Scraper.APIKey,
		BaseURL: cfg.Scraper.BaseURL,
		HL:      cfg.Scraper.HL,
		GL:      cfg.Scraper.GL,
		Timeout: cfg.Scraper.Timeout,
		Breaker: breaker(scraper.Name),
	}, shared))
	registry.Register(primary)
	registry.Register(fallback)

	engine := aggregate.NewEngine(primary, fallback, geocoder, shared, cfg.Aggregate)

	sports := sportsdb.New(sportsdb.Config{
		APIKey:  cfg.SportsDB.APIKey,
		BaseURL: cfg.SportsDB.BaseURL,
		Timeout: cfg.SportsDB.Timeout,
		Breaker: breaker(sportsdb.Name),
	}, shared)
	forecasts := weather.New(weather.Config{
		BaseURL: cfg.Weather.BaseURL,
		Timeout: cfg.Weather.Timeout,
		Breaker: breaker(weather.Name),
	}, shared)
	streams := twitch.New(twitch.Config{
		ClientID:     cfg.Twitch.ClientID,
		ClientSecret: cfg.Twitch.ClientSecret,
		BaseURL:      cfg.Twitch.BaseURL,
		TokenURL:     cfg.Twitch.TokenURL,
		Timeout:      cfg.Twitch.Timeout,
		Breaker:      breaker(twitch.Name),
	}, shared)

	handler := api.NewHandler(api.HandlerConfig{
		DefaultLimit: cfg.API.DefaultLimit,
		MaxLimit:     cfg.API.MaxLimit,
		Version:      version,
	}, api.Dependencies{
		Events:    engine,
		Sports:    sports,
		Weather:   forecasts,
		Streams:   streams,
		Providers: registry,
		Cache:     shared,
	})

	middlewareCfg := api.DefaultChiMiddlewareConfig()
	middlewareCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	middlewareCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	middlewareCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	middlewareCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	return &application{
		cache:   shared,
		handler: handler,
		router:  api.NewRouter(handler, middlewareCfg).SetupChi(),
	}
}
