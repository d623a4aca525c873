// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
)

const (
	// Name identifies the provider in cooldown keys, metrics and logs.
	Name = "scraper"

	// Source is stamped on every event this provider returns.
	Source = "scraperapi_google"

	DefaultBaseURL = "https://api.scraperapi.com/"
	DefaultTimeout = 20 * time.Second

	// ResultTTL is how long a non-empty scrape stays cached
	ResultTTL = 5 * time.Minute

	googleSearchURL = "https://www.google.com/search"
)

// Config configures the client. Zero values take defaults; an empty APIKey
// makes every Fetch return providers.ErrNotConfigured.
type Config struct {
	APIKey  string
	BaseURL string
	HL      string
	GL      string
	Timeout time.Duration
	Breaker *providers.Breaker
}

// Client fetches Google search result pages through the ScraperAPI proxy
// and extracts events from the HTML. It is the fallback when the primary
// search provider is exhausted or empty.
type Client struct {
	cfg   Config
	http  *providers.HTTPClient
	cache cache.Cacher
	now   func() time.Time
}

// New creates a scraping client backed by c for short-lived result caching.
func New(cfg Config, c cache.Cacher) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HL == "" {
		cfg.HL = "en"
	}
	if cfg.GL == "" {
		cfg.GL = "us"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		http: providers.NewHTTPClient(providers.HTTPConfig{
			Provider:  Name,
			Timeout:   cfg.Timeout,
			UserAgent: providers.BrowserUserAgent,
			Breaker:   cfg.Breaker,
		}),
		cache: c,
		now:   time.Now,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// ResultKey is the cache key for one scraped query.
func ResultKey(hl, gl, query string) string {
	return "scrape_ev:" + hl + ":" + gl + ":" + strings.ToLower(strings.TrimSpace(query))
}

// Fetch scrapes one search page for req.Query. Offset, chips and location
// are not supported by the fallback and are ignored.
func (c *Client) Fetch(ctx context.Context, req providers.FetchRequest) ([]models.Event, error) {
	if !c.Configured() {
		logging.Ctx(ctx).Warn().Str("provider", Name).Msg("ScraperAPI key missing; fallback disabled")
		return nil, providers.ErrNotConfigured
	}

	key := ResultKey(c.cfg.HL, c.cfg.GL, req.Query)
	if v, ok := c.cache.Get(key); ok {
		if events, ok := v.([]models.Event); ok {
			return events, nil
		}
	}

	target := googleSearchURL + "?" + url.Values{
		"q":  {req.Query},
		"hl": {c.cfg.HL},
		"gl": {c.cfg.GL},
	}.Encode()

	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("url", target)

	headers := http.Header{}
	headers.Set("Accept", "text/html")

	body, err := c.http.Get(ctx, c.cfg.BaseURL, params, headers)
	if err != nil {
		return nil, err
	}

	events, err := ParseHTML(bytes.NewReader(body), c.now())
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("provider", Name).Str("query", req.Query).Int("parsed", len(events)).Msg("Scraped events")
	if len(events) > 0 {
		c.cache.SetWithTTL(key, events, ResultTTL)
	}
	return events, nil
}
