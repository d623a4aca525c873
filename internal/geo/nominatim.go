// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/eventscope/internal/metrics"
)

// ========================================
// OpenStreetMap Nominatim
// ========================================

const (
	// DefaultNominatimURL is the public OpenStreetMap instance.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies the application as required by the Nominatim usage policy.
	DefaultUserAgent = "eventscope/1.0 (+https://github.com/tomtom215/eventscope)"

	defaultNominatimTimeout = 8 * time.Second
	maxNominatimBody        = 1 << 20
)

// NominatimConfig configures a NominatimClient. Zero values take defaults.
type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond throttles outbound calls. The public instance allows one.
	RequestsPerSecond float64
}

// NominatimClient implements Geocoder against the Nominatim HTTP API.
type NominatimClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// nominatimReverseResponse is the subset of /reverse output we use
type nominatimReverseResponse struct {
	Error   string `json:"error"`
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Hamlet  string `json:"hamlet"`
		State   string `json:"state"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"address"`
}

// nominatimSearchResult is one element of /search output. Coordinates are strings.
type nominatimSearchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimClient creates a Nominatim geocoder.
func NewNominatimClient(cfg NominatimConfig) *NominatimClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultNominatimTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}

	return &NominatimClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Name returns the provider name.
func (c *NominatimClient) Name() string {
	return "nominatim"
}

// Reverse resolves a coordinate to city, state and country.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Locality, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("zoom", "10")
	params.Set("addressdetails", "1")

	var resp nominatimReverseResponse
	if err := c.get(ctx, "/reverse", params, &resp); err != nil {
		metrics.RecordGeocode("reverse", false)
		return nil, err
	}

	loc := convertNominatimAddress(&resp)
	if resp.Error != "" || (loc.Empty() && loc.Country == "") {
		metrics.RecordGeocode("reverse", false)
		return nil, ErrNoMatch
	}

	metrics.RecordGeocode("reverse", true)
	return loc, nil
}

// Forward resolves address text to its best matching coordinate.
func (c *NominatimClient) Forward(ctx context.Context, text string) (*Point, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []nominatimSearchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		metrics.RecordGeocode("forward", false)
		return nil, err
	}
	if len(results) == 0 {
		metrics.RecordGeocode("forward", false)
		return nil, ErrNoMatch
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		metrics.RecordGeocode("forward", false)
		return nil, fmt.Errorf("nominatim returned unparseable coordinates %q,%q", results[0].Lat, results[0].Lon)
	}

	metrics.RecordGeocode("forward", true)
	return &Point{Lat: lat, Lon: lon}, nil
}

// get bounds the throttle wait and the exchange together by the client
// timeout. A call that cannot get a token in time fails at once.
func (c *NominatimClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("nominatim throttle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query nominatim: %w", err)
	}
	defer resp.Body.Close()

	if err := checkNominatimResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxNominatimBody)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}

func checkNominatimResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrGeocoderRateLimited
	default:
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}
}

func convertNominatimAddress(resp *nominatimReverseResponse) *Locality {
	a := resp.Address
	return &Locality{
		City:    firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet),
		State:   firstNonEmpty(a.State, a.Region),
		Country: a.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
