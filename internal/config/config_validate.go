// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateProviders(); err != nil {
		return err
	}

	if err := c.Aggregate.Validate(); err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	return nil
}

// validEnvironments defines the allowed server environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// validateAPI validates result limits
func (c *Config) validateAPI() error {
	if c.API.MaxLimit < 1 || c.API.MaxLimit > 100 {
		return fmt.Errorf("API_MAX_LIMIT must be between 1 and 100")
	}
	if c.API.DefaultLimit < 1 || c.API.DefaultLimit > c.API.MaxLimit {
		return fmt.Errorf("API_DEFAULT_LIMIT must be between 1 and API_MAX_LIMIT (%d)", c.API.MaxLimit)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects malformed origins. "*" is accepted and reported by
// ShouldWarnAboutCORS.
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must start with http:// or https://", origin)
		}
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if wildcard CORS is configured in production
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TTL must be positive")
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio < 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be between 0 and 1")
	}
	if c.Breaker.Interval < 0 || c.Breaker.Timeout < 0 {
		return fmt.Errorf("BREAKER_INTERVAL and BREAKER_TIMEOUT must not be negative")
	}
	return nil
}

// validateProviders checks every upstream URL and the credentials that
// must come in pairs. Missing API keys are not errors: the provider is
// reported as not configured at request time.
func (c *Config) validateProviders() error {
	urls := []struct {
		name  string
		value string
	}{
		{"SERPAPI_BASE_URL", c.SerpAPI.BaseURL},
		{"SCRAPERAPI_BASE_URL", c.Scraper.BaseURL},
		{"GEOCODER_BASE_URL", c.Geocoder.BaseURL},
		{"SPORTSDB_BASE_URL", c.SportsDB.BaseURL},
		{"WEATHER_BASE_URL", c.Weather.BaseURL},
		{"TWITCH_BASE_URL", c.Twitch.BaseURL},
		{"TWITCH_TOKEN_URL", c.Twitch.TokenURL},
	}
	for _, u := range urls {
		if err := validateEndpointURL(u.value, u.name); err != nil {
			return err
		}
	}

	for name, key := range map[string]string{
		"SERPAPI_API_KEY":      c.SerpAPI.APIKey,
		"SCRAPERAPI_API_KEY":   c.Scraper.APIKey,
		"TWITCH_CLIENT_SECRET": c.Twitch.ClientSecret,
	} {
		if key != "" && containsPlaceholder(key) {
			return fmt.Errorf("%s appears to contain a placeholder value", name)
		}
	}

	if (c.Twitch.ClientID == "") != (c.Twitch.ClientSecret == "") {
		return fmt.Errorf("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET must be set together")
	}

	if c.Geocoder.UserAgent == "" {
		return fmt.Errorf("GEOCODER_USER_AGENT is required by the Nominatim usage policy")
	}
	if c.Geocoder.RequestsPerSecond < 0 {
		return fmt.Errorf("GEOCODER_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_SECRET",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
