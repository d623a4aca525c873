// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package main is the entry point for the Eventscope server application.

Eventscope finds events near a user or inside a map viewport. It searches
Google Events through SerpAPI, falls back to a scraping proxy when SerpAPI
rate limits, geocodes and ranks what it finds by distance, and adds sports
fixtures, weather and Twitch streams as context.

# Application Architecture

	RootSupervisor ("eventscope")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── shared cache janitor
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Shared cache: in-memory TTL cache used by every provider and the engine
 4. Providers: SerpAPI, scraper, Nominatim, TheSportsDB, Open-Meteo, Twitch,
    each behind its own circuit breaker
 5. Aggregation engine: fan-out, fallback, ranking and viewport filtering
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

	HTTP_PORT=3857               # EPSG:3857 reference
	LOG_LEVEL=info               # trace, debug, info, warn, error
	SERPAPI_API_KEY=...          # primary event search
	SCRAPERAPI_API_KEY=...       # fallback when SerpAPI is rate limited
	TWITCH_CLIENT_ID=...         # optional, for /streams
	TWITCH_CLIENT_SECRET=...
	CORS_ORIGINS=https://map.example.com

See package config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT and the janitor stops.
Services that miss the deadline are logged by name.
*/
package main
