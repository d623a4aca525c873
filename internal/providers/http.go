// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/eventscope/internal/logging"
)

const (
	// maxErrorBodySize bounds how much of a failed response is kept for logs
	maxErrorBodySize = 64 * 1024

	// maxResponseBodySize bounds successful responses (scraped pages can be large)
	maxResponseBodySize = 8 << 20

	// BrowserUserAgent is sent where upstreams serve degraded markup to unknown clients.
	BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// HTTPConfig configures an HTTPClient. Zero values take defaults.
type HTTPConfig struct {
	// Provider names the upstream in logs, errors and breaker metrics
	Provider string

	Timeout   time.Duration
	UserAgent string

	// RequestsPerSecond throttles outbound calls when > 0
	RequestsPerSecond float64

	// Breaker, when set, guards every request
	Breaker *Breaker

	// Transport overrides the default transport (tests, proxies)
	Transport http.RoundTripper
}

// HTTPClient performs GET requests against one upstream and maps HTTP status
// codes onto the provider sentinel errors.
type HTTPClient struct {
	client    *http.Client
	provider  string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	breaker   *Breaker
}

// NewHTTPClient creates an HTTPClient for one provider.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	c := &HTTPClient{
		client:    &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		provider:  cfg.Provider,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		breaker:   cfg.Breaker,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Breaker returns the circuit breaker guarding this client, or nil.
func (c *HTTPClient) Breaker() *Breaker {
	return c.breaker
}

// Get fetches rawURL with params merged into its query and returns the body.
func (c *HTTPClient) Get(ctx context.Context, rawURL string, params url.Values, headers http.Header) ([]byte, error) {
	if c.breaker == nil {
		return c.do(ctx, rawURL, params, headers)
	}
	return Do(c.breaker, func() ([]byte, error) {
		return c.do(ctx, rawURL, params, headers)
	})
}

// GetJSON fetches rawURL and decodes the body into out.
func (c *HTTPClient) GetJSON(ctx context.Context, rawURL string, params url.Values, headers http.Header, out interface{}) error {
	body, err := c.Get(ctx, rawURL, params, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, c.provider, err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, rawURL string, params url.Values, headers http.Header) ([]byte, error) {
	reqURL, err := buildURL(rawURL, params)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid url: %w", c.provider, err)
	}

	// The timeout covers the throttle wait as well as the exchange
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s throttle: %w", ErrTransient, c.provider, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request failed: %w", c.provider, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s request abandoned: %w", ErrTransient, c.provider, ctxErr)
		}
		// url.Error embeds the full URL including api keys
		return nil, fmt.Errorf("%w: %s request failed: %s", ErrTransient, c.provider, errorText(err))
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, c.provider); err != nil {
		logging.Debug().
			Str("provider", c.provider).
			Str("url", logging.RedactURL(reqURL)).
			Int("status", resp.StatusCode).
			Err(err).
			Msg("Provider request failed")
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s read body: %v", ErrTransient, c.provider, err)
	}
	return body, nil
}

// checkResponse maps non-2xx responses onto sentinel errors
func checkResponse(resp *http.Response, provider string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	excerpt := logging.TruncateString(string(readBodyForError(resp.Body)), 200)
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned 429", ErrRateLimited, provider)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s returned 401: %s", ErrUnauthorized, provider, excerpt)
	default:
		return fmt.Errorf("%w: %s returned status %d: %s", ErrTransient, provider, resp.StatusCode, excerpt)
	}
}

// readBodyForError reads a bounded excerpt of an error response body
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

func buildURL(rawURL string, params url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			q.Del(k)
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// errorText unwraps url.Error so the URL can be redacted on its own
func errorText(err error) string {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err.Error()
	}
	return fmt.Sprintf("%s %s: %v", ue.Op, logging.RedactURL(ue.URL), ue.Err)
}

// JoinURL appends path segments to a base URL, tolerating stray slashes.
func JoinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		out += "/" + strings.Trim(p, "/")
	}
	return out
}
