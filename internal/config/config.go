// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/eventscope/internal/aggregate"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Upstream providers:
//     - SerpAPI: Primary event search (Google Events engine)
//     - Scraper: Fallback search through a scraping proxy
//     - Geocoder: Nominatim address resolution
//     - SportsDB, Weather, Twitch: Context providers
//
//  2. Engine:
//     - Aggregate: Fan-out budgets, radius ladder, cooldowns and TTLs
//     - Cache: Shared TTL cache
//
//  3. Surface:
//     - Server: HTTP server (host, port, timeouts)
//     - API: Result limits
//     - Security: CORS and rate limiting
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: cfg.Server.Addr()}
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	API       APIConfig        `koanf:"api"`
	Security  SecurityConfig   `koanf:"security"`
	Logging   LoggingConfig    `koanf:"logging"`
	Cache     CacheConfig      `koanf:"cache"`
	Breaker   BreakerConfig    `koanf:"breaker"`
	SerpAPI   SearchConfig     `koanf:"serpapi"`
	Scraper   SearchConfig     `koanf:"scraper"`
	Geocoder  GeocoderConfig   `koanf:"geocoder"`
	SportsDB  SportsDBConfig   `koanf:"sportsdb"`
	Weather   WeatherConfig    `koanf:"weather"`
	Twitch    TwitchConfig     `koanf:"twitch"`
	Aggregate aggregate.Policy `koanf:"aggregate"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // read and write timeout
	IdleTimeout     time.Duration `koanf:"idle_timeout"`     // keep-alive idle timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown deadline
	Environment     string        `koanf:"environment"`      // "development", "staging", "production"
}

// Addr returns the listen address for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds result sizing for GET /events
type APIConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// CacheConfig configures the process-wide TTL cache shared by every provider.
type CacheConfig struct {
	DefaultTTL      time.Duration `koanf:"default_ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	SingleFlight    bool          `koanf:"single_flight"`
}

// BreakerConfig tunes the per-provider circuit breakers.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SearchConfig configures an event search upstream (SerpAPI or the scraper).
// An empty APIKey leaves the provider unconfigured.
type SearchConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	HL      string        `koanf:"hl"`
	GL      string        `koanf:"gl"`
	Timeout time.Duration `koanf:"timeout"`
}

// Enabled reports whether an API key is set.
func (s SearchConfig) Enabled() bool {
	return s.APIKey != ""
}

// GeocoderConfig configures the Nominatim geocoder.
type GeocoderConfig struct {
	BaseURL           string        `koanf:"base_url"`
	UserAgent         string        `koanf:"user_agent"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// SportsDBConfig configures TheSportsDB. The public free-tier key is used
// when APIKey is empty.
type SportsDBConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// WeatherConfig configures Open-Meteo.
type WeatherConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// TwitchConfig configures the Twitch Helix client credentials flow.
type TwitchConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	TokenURL     string        `koanf:"token_url"`
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
}

// Enabled reports whether both client credentials are set.
func (t TwitchConfig) Enabled() bool {
	return t.ClientID != "" && t.ClientSecret != ""
}

// Load reads configuration from all sources in order of precedence:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
