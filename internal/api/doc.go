// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package api provides the HTTP REST API layer for Eventscope.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers backed by narrow data source interfaces
  - Request structs: query parsing plus go-playground/validator rules
  - Response formatting: the success/error envelope with request metadata

Endpoints:

1. Events (/api/v1/events):
  - Aggregated nearby event search with ranking, viewport filtering and
    the provider fallback flags. This is the only endpoint that answers
    without the envelope, keeping its flat {total, data, events} shape.

2. Sports (/api/v1/sports/):
  - League aliases and the sport catalogue
  - Team search
  - Upcoming and recent fixtures per league, raw or as events

3. Context (/api/v1/weather, /api/v1/streams):
  - Current weather with an optional hourly forecast
  - Live streams for a game category

4. Operations:
  - Health probes (/api/v1/health/live, ready, performance)
  - Provider cooldowns, breaker states and cache stats (/api/v1/providers/status)
  - Prometheus metrics (/metrics) and Swagger UI (/swagger/)

Error Mapping:

Invalid query parameters yield 400 with code VALIDATION_ERROR or
BAD_REQUEST. Provider errors on the pass-through endpoints map to 503
(not configured), 429 (quota exhausted, with Retry-After) or 502. The
events endpoint never fails on provider errors.

Usage Example:

	handler := api.NewHandler(api.HandlerConfig{DefaultLimit: 20, MaxLimit: 100}, api.Dependencies{
	    Events:    engine,
	    Sports:    sportsClient,
	    Weather:   weatherClient,
	    Streams:   twitchClient,
	    Providers: registry,
	    Cache:     sharedCache,
	})
	router := api.NewRouter(handler, api.DefaultChiMiddlewareConfig())
	srv := &http.Server{Addr: ":3857", Handler: router.SetupChi()}
*/
package api
