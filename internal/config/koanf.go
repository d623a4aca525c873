// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/eventscope/internal/aggregate"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/providers/scraper"
	"github.com/tomtom215/eventscope/internal/providers/serpapi"
	"github.com/tomtom215/eventscope/internal/providers/sportsdb"
	"github.com/tomtom215/eventscope/internal/providers/twitch"
	"github.com/tomtom215/eventscope/internal/providers/weather"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/eventscope/config.yaml",
	"/etc/eventscope/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			DefaultLimit: 20,
			MaxLimit:     50,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Cache: CacheConfig{
			DefaultTTL:      5 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			SingleFlight:    true,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		SerpAPI: SearchConfig{
			BaseURL: serpapi.DefaultBaseURL,
			HL:      "en",
			GL:      "us",
			Timeout: 20 * time.Second,
		},
		Scraper: SearchConfig{
			BaseURL: scraper.DefaultBaseURL,
			HL:      "en",
			GL:      "us",
			Timeout: 30 * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:           geo.DefaultNominatimURL,
			UserAgent:         "eventscope/1.0 (+https://github.com/tomtom215/eventscope)",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 1,
		},
		SportsDB: SportsDBConfig{
			APIKey:  sportsdb.DefaultAPIKey,
			BaseURL: sportsdb.DefaultBaseURL,
			Timeout: sportsdb.DefaultTimeout,
		},
		Weather: WeatherConfig{
			BaseURL: weather.DefaultBaseURL,
			Timeout: 15 * time.Second,
		},
		Twitch: TwitchConfig{
			TokenURL: twitch.DefaultTokenURL,
			BaseURL:  twitch.DefaultBaseURL,
			Timeout:  15 * time.Second,
		},
		Aggregate: aggregate.DefaultPolicy(),
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
//
// Loading order (later sources override earlier ones):
//  1. Built-in defaults (from defaultConfig())
//  2. Config file (YAML) if found
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values become slices before unmarshaling
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default locations.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths that accept comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"aggregate.radius_ladder_km",
}

// processSliceFields splits comma-separated string values at the slice paths.
// YAML lists are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unmapped variables are ignored so unrelated process env never leaks into
// the config tree.
var envMappings = map[string]string{
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"api_default_limit": "api.default_limit",
	"api_max_limit":     "api.max_limit",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cache_default_ttl":      "cache.default_ttl",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"cache_single_flight":    "cache.single_flight",

	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	"serpapi_api_key":  "serpapi.api_key",
	"serpapi_base_url": "serpapi.base_url",
	"serpapi_hl":       "serpapi.hl",
	"serpapi_gl":       "serpapi.gl",
	"serpapi_timeout":  "serpapi.timeout",

	"scraperapi_api_key":  "scraper.api_key",
	"scraperapi_base_url": "scraper.base_url",
	"scraperapi_hl":       "scraper.hl",
	"scraperapi_gl":       "scraper.gl",
	"scraperapi_timeout":  "scraper.timeout",

	"geocoder_base_url":            "geocoder.base_url",
	"geocoder_user_agent":          "geocoder.user_agent",
	"geocoder_timeout":             "geocoder.timeout",
	"geocoder_requests_per_second": "geocoder.requests_per_second",

	"sportsdb_api_key":  "sportsdb.api_key",
	"sportsdb_base_url": "sportsdb.base_url",
	"sportsdb_timeout":  "sportsdb.timeout",

	"weather_base_url": "weather.base_url",
	"weather_timeout":  "weather.timeout",

	"twitch_client_id":     "twitch.client_id",
	"twitch_client_secret": "twitch.client_secret",
	"twitch_token_url":     "twitch.token_url",
	"twitch_base_url":      "twitch.base_url",
	"twitch_timeout":       "twitch.timeout",

	"aggregate_result_ttl":        "aggregate.result_ttl",
	"aggregate_local_radius_km":   "aggregate.local_radius_km",
	"aggregate_min_local":         "aggregate.min_local",
	"aggregate_radius_ladder_km":  "aggregate.radius_ladder_km",
	"aggregate_page_size":         "aggregate.page_size",
	"aggregate_call_budget":       "aggregate.call_budget",
	"aggregate_viewport_budget":   "aggregate.viewport_call_budget",
	"aggregate_enrich_limit":      "aggregate.enrich_limit",
	"aggregate_viewport_enrich":   "aggregate.viewport_enrich_limit",
	"aggregate_primary_cooldown":  "aggregate.primary_cooldown",
	"aggregate_fallback_cooldown": "aggregate.fallback_cooldown",
	"aggregate_stale_ttl":         "aggregate.stale_ttl",
	"aggregate_limited_threshold": "aggregate.limited_threshold",
	"aggregate_default_query":     "aggregate.default_query",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// It returns "" for variables that have no mapping, which koanf skips.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
