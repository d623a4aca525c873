// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
)

const (
	// Name identifies the provider in token keys, metrics and logs.
	Name = "twitch"

	DefaultBaseURL  = "https://api.twitch.tv/helix"
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"
	DefaultTimeout  = 15 * time.Second

	// tokenRefreshMargin expires cached tokens early so in-flight calls never
	// carry a token that dies mid-request
	tokenRefreshMargin = 60 * time.Second

	maxPageSize = 100
)

// Config configures the client. ClientID and ClientSecret are both required.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
	Breaker      *providers.Breaker
}

// Client lists live streams through the Helix API using an app access token.
// The token lives in the shared cache under cache.TokenKey(Name).
type Client struct {
	cfg       Config
	http      *providers.HTTPClient
	tokenHTTP *http.Client
	oauth     *clientcredentials.Config
	cache     cache.Cacher
}

type streamsPage struct {
	Data []models.Stream `json:"data"`
}

// New creates a Twitch client backed by c.
func New(cfg Config, c cache.Cacher) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:       cfg,
		http:      providers.NewHTTPClient(providers.HTTPConfig{Provider: Name, Timeout: cfg.Timeout, Breaker: cfg.Breaker}),
		tokenHTTP: &http.Client{Timeout: cfg.Timeout},
		oauth: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		cache: c,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// Configured reports whether client credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// Streams returns live streams for a game category. first caps the page size
// (Helix allows 1..100); 0 uses the upstream default.
func (c *Client) Streams(ctx context.Context, gameID string, first int) (*models.StreamsResponse, error) {
	if !c.Configured() {
		return nil, providers.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("game_id", gameID)
	if first > 0 {
		if first > maxPageSize {
			first = maxPageSize
		}
		params.Set("first", strconv.Itoa(first))
	}

	page, err := c.streams(ctx, params)
	if errors.Is(err, providers.ErrUnauthorized) {
		// token revoked or expired early: fetch a new one and retry once
		c.cache.Delete(cache.TokenKey(Name))
		page, err = c.streams(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	data := page.Data
	if data == nil {
		data = []models.Stream{}
	}
	return &models.StreamsResponse{Data: data, Total: len(data)}, nil
}

func (c *Client) streams(ctx context.Context, params url.Values) (*streamsPage, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Client-ID", c.cfg.ClientID)
	headers.Set("Authorization", "Bearer "+token)

	var page streamsPage
	if err := c.http.GetJSON(ctx, providers.JoinURL(c.cfg.BaseURL, "streams"), params, headers, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// token returns a cached app access token or obtains a new one.
func (c *Client) token(ctx context.Context) (string, error) {
	key := cache.TokenKey(Name)
	if v, ok := c.cache.Get(key); ok {
		if token, ok := v.(string); ok && token != "" {
			return token, nil
		}
	}

	tok, err := c.oauth.Token(context.WithValue(ctx, oauth2.HTTPClient, c.tokenHTTP))
	if err != nil {
		return "", classifyTokenError(err)
	}

	ttl := time.Hour
	if !tok.Expiry.IsZero() {
		ttl = time.Until(tok.Expiry) - tokenRefreshMargin
	}
	if ttl > 0 {
		c.cache.SetWithTTL(key, tok.AccessToken, ttl)
	}

	logging.Ctx(ctx).Debug().
		Str("provider", Name).
		Str("token", logging.SanitizeToken(tok.AccessToken)).
		Dur("ttl", ttl).
		Msg("Obtained app access token")
	return tok.AccessToken, nil
}

func classifyTokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		switch re.Response.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s token endpoint returned 429", providers.ErrRateLimited, Name)
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s rejected client credentials (status %d)", providers.ErrNotConfigured, Name, re.Response.StatusCode)
		}
	}
	return fmt.Errorf("%w: %s token request failed: %v", providers.ErrTransient, Name, err)
}
