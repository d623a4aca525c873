// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package config provides centralized configuration management for Eventscope.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Later layers win.

# Config File

The first existing file of CONFIG_PATH, config.yaml, config.yml,
/etc/eventscope/config.yaml and /etc/eventscope/config.yml is loaded.
Keys mirror the koanf struct tags:

	server:
	  port: 3857
	  environment: production
	security:
	  cors_origins: ["https://map.example.com"]
	serpapi:
	  api_key: "..."
	aggregate:
	  radius_ladder_km: [50, 100, 120, 250, 500]
	  primary_cooldown: 12h

# Environment Variables

Only variables listed in the mapping table are read. The most common:

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging, production (default: development)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: none)
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP limit (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Providers:
  - SERPAPI_API_KEY: Primary event search (unset: primary not configured)
  - SCRAPERAPI_API_KEY: Scraping fallback (unset: fallback disabled)
  - SPORTSDB_API_KEY: TheSportsDB key (default: public free-tier key)
  - TWITCH_CLIENT_ID / TWITCH_CLIENT_SECRET: Helix client credentials
  - GEOCODER_USER_AGENT: Sent to Nominatim (required by its usage policy)

Aggregation:
  - AGGREGATE_RADIUS_LADDER_KM: Comma-separated ascending radii
  - AGGREGATE_PRIMARY_COOLDOWN / AGGREGATE_FALLBACK_COOLDOWN: Provider backoff

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)

# Validation

Load returns an error naming the first offending variable: port ranges,
endpoint URL shape, positive durations, a strictly ascending radius ladder,
limit bounds and paired Twitch credentials.
*/
package config
