// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
)

const (
	// Name identifies the provider in cooldown keys, metrics and logs.
	Name = "serpapi"

	// Source is stamped on every event this provider returns.
	Source = "google_events"

	DefaultBaseURL = "https://serpapi.com/search.json"
	DefaultTimeout = 20 * time.Second

	// PlaceTimeout bounds one place-details lookup during enrichment
	PlaceTimeout = 6 * time.Second

	// PlaceTTL is how long resolved place coordinates stay cached
	PlaceTTL = time.Hour

	// maxEnrichConcurrency caps parallel enrichment lookups per batch
	maxEnrichConcurrency = 8
)

// Config configures the client. Zero values take defaults; an empty APIKey
// makes every Fetch return providers.ErrNotConfigured.
type Config struct {
	APIKey  string
	BaseURL string
	HL      string // interface language, default "en"
	GL      string // country, default "us"
	Timeout time.Duration
	Breaker *providers.Breaker
}

// AddressGeocoder resolves free-form addresses. geo.CachedGeocoder implements it.
type AddressGeocoder interface {
	ForwardGeocode(ctx context.Context, text string) *geo.Point
}

// Client searches Google Events through SerpAPI.
type Client struct {
	cfg      Config
	search   *providers.HTTPClient
	place    *providers.HTTPClient
	cache    cache.Cacher
	geocoder AddressGeocoder
	now      func() time.Time
}

// searchResponse is the subset of the google_events answer we read.
// Items stay raw so one malformed event cannot fail the batch.
type searchResponse struct {
	Error         string            `json:"error"`
	EventsResults []json.RawMessage `json:"events_results"`
}

type rawEvent struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Address     []string `json:"address"`
	Venue       struct {
		Name string `json:"name"`
	} `json:"venue"`
	Date struct {
		When      string `json:"when"`
		StartDate string `json:"start_date"`
	} `json:"date"`
	EventLocationMap struct {
		SerpapiLink string `json:"serpapi_link"`
	} `json:"event_location_map"`
}

// placeResponse carries coordinates from a place-details lookup.
// SerpAPI uses either key depending on the engine.
type placeResponse struct {
	PlaceResults *placeResult `json:"place_results"`
	PlaceResult  *placeResult `json:"place_result"`
}

type placeResult struct {
	GPSCoordinates struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"gps_coordinates"`
}

// New creates a SerpAPI client. c caches place lookups; g may be nil to
// disable address geocoding.
func New(cfg Config, c cache.Cacher, g AddressGeocoder) *Client {
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
		cfg:      cfg,
		search:   providers.NewHTTPClient(providers.HTTPConfig{Provider: Name, Timeout: cfg.Timeout, Breaker: cfg.Breaker}),
		place:    providers.NewHTTPClient(providers.HTTPConfig{Provider: Name + "-place", Timeout: PlaceTimeout}),
		cache:    c,
		geocoder: g,
		now:      time.Now,
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

// Fetch runs one google_events search and enriches up to req.EnrichLimit
// events with coordinates.
func (c *Client) Fetch(ctx context.Context, req providers.FetchRequest) ([]models.Event, error) {
	if !c.Configured() {
		logging.Ctx(ctx).Warn().Str("provider", Name).Msg("SerpAPI key missing; returning no events")
		return nil, providers.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("engine", "google_events")
	params.Set("q", req.Query)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("start", strconv.Itoa(req.Offset))
	params.Set("hl", c.cfg.HL)
	params.Set("gl", c.cfg.GL)
	if chips := req.ChipsParam(); chips != "" {
		params.Set("htichips", chips)
	}
	if req.Location != "" {
		params.Set("location", req.Location)
	}
	if req.NoCache {
		params.Set("no_cache", "true")
	}

	var resp searchResponse
	if err := c.search.GetJSON(ctx, c.cfg.BaseURL, params, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		// Quota exhaustion comes back as 200 with an error message on some plans
		if strings.Contains(strings.ToLower(resp.Error), "run out of searches") {
			return nil, fmt.Errorf("%w: %s", providers.ErrRateLimited, resp.Error)
		}
		logging.Ctx(ctx).Debug().Str("provider", Name).Str("query", req.Query).Str("upstream_error", resp.Error).Msg("SerpAPI returned no events")
		return nil, nil
	}

	events, targets := c.normalize(ctx, resp.EventsResults)
	c.enrich(ctx, events, targets, req.EnrichLimit)
	return events, nil
}

// enrichTarget records where coordinates for events[index] might come from
type enrichTarget struct {
	index     int
	placeLink string
	address   string
}

func (c *Client) normalize(ctx context.Context, items []json.RawMessage) ([]models.Event, []enrichTarget) {
	now := c.now()
	events := make([]models.Event, 0, len(items))
	var targets []enrichTarget

	for _, item := range items {
		var raw rawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			metrics.RecordSkippedItem(Name)
			logging.Ctx(ctx).Warn().Err(err).Str("provider", Name).Msg("Skipping malformed event")
			continue
		}

		ev := toEvent(&raw, now)
		if ev.ID == "" {
			metrics.RecordSkippedItem(Name)
			continue
		}
		events = append(events, ev)

		if raw.EventLocationMap.SerpapiLink != "" || len(raw.Address) > 0 {
			targets = append(targets, enrichTarget{
				index:     len(events) - 1,
				placeLink: raw.EventLocationMap.SerpapiLink,
				address:   strings.Join(raw.Address, ", "),
			})
		}
	}
	return events, targets
}

func toEvent(raw *rawEvent, now time.Time) models.Event {
	ev := models.Event{
		ID:          raw.Link,
		Source:      Source,
		Name:        raw.Title,
		Description: raw.Description,
		URL:         raw.Link,
		Image:       raw.Thumbnail,
		Venue:       raw.Venue.Name,
	}
	if ev.ID == "" {
		ev.ID = raw.Title
	}
	if ev.Name == "" {
		ev.Name = "Untitled"
	}

	if n := len(raw.Address); n > 0 {
		if ev.Venue == "" {
			ev.Venue = raw.Address[0]
		}
		ev.City, ev.Country = splitLocality(raw.Address[n-1])
	}

	when := raw.Date.When
	if when == "" {
		when = raw.Date.StartDate
	}
	if start, end, ok := ParseWhen(when, now); ok {
		ev.Start, ev.End = start, end
	} else {
		ev.Start = when
	}
	return ev
}

// splitLocality reads "Austin, TX" style address lines: first part is the
// city, last part the country (or region).
func splitLocality(line string) (city, country string) {
	if !strings.Contains(line, ",") {
		return strings.TrimSpace(line), ""
	}
	parts := strings.Split(line, ",")
	city = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		country = strings.TrimSpace(parts[len(parts)-1])
	}
	return city, country
}

// PlaceKey is the cache key for a resolved place link.
func PlaceKey(link string) string {
	return "latlon:" + link
}

// resolvePlace returns the coordinates behind a SerpAPI place link, or nil.
// Misses are cached too so a dead link is not retried for an hour.
func (c *Client) resolvePlace(ctx context.Context, link string) *geo.Point {
	v := c.cache.GetOrSet(PlaceKey(link), PlaceTTL, func() interface{} {
		params := url.Values{}
		if u, err := url.Parse(link); err == nil && u.Query().Get("api_key") == "" {
			params.Set("api_key", c.cfg.APIKey)
		}

		var resp placeResponse
		if err := c.place.GetJSON(ctx, link, params, nil, &resp); err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("provider", Name).Msg("Place lookup failed")
			return nil
		}
		place := resp.PlaceResults
		if place == nil {
			place = resp.PlaceResult
		}
		if place == nil || place.GPSCoordinates.Latitude == nil || place.GPSCoordinates.Longitude == nil {
			return nil
		}
		return &geo.Point{Lat: *place.GPSCoordinates.Latitude, Lon: *place.GPSCoordinates.Longitude}
	})
	p, _ := v.(*geo.Point)
	return p
}
