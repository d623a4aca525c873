// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package serpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/providers"
)

type stubGeocoder struct {
	mu    sync.Mutex
	calls []string
	point *geo.Point
}

func (s *stubGeocoder) ForwardGeocode(_ context.Context, text string) *geo.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	return s.point
}

// newUpstream serves a search page with three events: one with a place link,
// one with only an address and one malformed item.
func newUpstream(t *testing.T, placeHits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("engine") != "google_events" || q.Get("api_key") != "test-key" {
			t.Errorf("unexpected params: %v", q)
		}
		if q.Get("start") != "10" || q.Get("htichips") != "date:today,date:week" || q.Get("location") != "Austin, Texas" {
			t.Errorf("unexpected request params: %v", q)
		}
		if q.Get("no_cache") != "true" {
			t.Errorf("no_cache = %q", q.Get("no_cache"))
		}
		fmt.Fprintf(w, `{"events_results": [
			{"title": "Jazz Night", "link": "https://example.com/jazz",
			 "date": {"when": "Fri, Oct 7, 7 – 8 PM"},
			 "address": ["Elephant Room", "Austin, TX"],
			 "venue": {"name": "The Elephant Room"},
			 "event_location_map": {"serpapi_link": "%s/place?id=1"}},
			{"title": "Farmers Market", "link": "https://example.com/market",
			 "date": {"start_date": "Every Saturday"},
			 "address": ["Republic Square", "Austin, TX, United States"]},
			{"title": 42}
		]}`, server.URL)
	})
	mux.HandleFunc("/place", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(placeHits, 1)
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("place lookup missing api key")
		}
		_, _ = w.Write([]byte(`{"place_results": {"gps_coordinates": {"latitude": 30.2655, "longitude": -97.7446}}}`))
	})
	server = httptest.NewServer(mux)
	return server
}

func TestFetchNormalizesAndEnriches(t *testing.T) {
	t.Parallel()

	var placeHits int32
	server := newUpstream(t, &placeHits)
	defer server.Close()

	g := &stubGeocoder{point: &geo.Point{Lat: 30.2661, Lon: -97.7452}}
	c := New(Config{APIKey: "test-key", BaseURL: server.URL + "/search.json"}, cache.New(time.Minute), g)
	c.now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }

	req := providers.FetchRequest{
		Query: "events in Austin", Offset: 10, Chips: []string{"date:today", "date:week"},
		Location: "Austin, Texas", NoCache: true, EnrichLimit: 6,
	}
	events, err := c.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (malformed item skipped)", len(events))
	}

	jazz := events[0]
	if jazz.ID != "https://example.com/jazz" || jazz.Source != Source {
		t.Errorf("identity = %q / %q", jazz.ID, jazz.Source)
	}
	if jazz.Venue != "The Elephant Room" || jazz.City != "Austin" || jazz.Country != "TX" {
		t.Errorf("location = %q, %q, %q", jazz.Venue, jazz.City, jazz.Country)
	}
	if jazz.Start != "2026-10-07T19:00:00" || jazz.End != "2026-10-07T20:00:00" {
		t.Errorf("dates = %q - %q", jazz.Start, jazz.End)
	}
	if !jazz.HasCoordinates() || *jazz.Latitude != 30.2655 {
		t.Errorf("place coordinates not applied: %+v", jazz)
	}

	market := events[1]
	if market.Start != "Every Saturday" {
		t.Errorf("unparseable date should be kept raw, got %q", market.Start)
	}
	if market.Venue != "Republic Square" || market.Country != "United States" {
		t.Errorf("market location = %q / %q", market.Venue, market.Country)
	}
	if !market.HasCoordinates() || *market.Latitude != 30.2661 {
		t.Errorf("geocoded coordinates not applied: %+v", market)
	}
	if len(g.calls) != 1 || g.calls[0] != "Republic Square, Austin, TX, United States" {
		t.Errorf("geocoder calls = %v", g.calls)
	}

	// place lookups are cached
	if _, err := c.Fetch(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&placeHits); got != 1 {
		t.Errorf("place lookups = %d, want 1", got)
	}
}

func TestFetchRespectsEnrichLimit(t *testing.T) {
	t.Parallel()

	var placeHits int32
	server := newUpstream(t, &placeHits)
	defer server.Close()

	g := &stubGeocoder{point: &geo.Point{Lat: 1, Lon: 1}}
	c := New(Config{APIKey: "test-key", BaseURL: server.URL + "/search.json"}, cache.New(time.Minute), g)

	events, err := c.Fetch(context.Background(), providers.FetchRequest{
		Query: "events", Offset: 10, Chips: []string{"date:today", "date:week"},
		Location: "Austin, Texas", NoCache: true, EnrichLimit: 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		if ev.HasCoordinates() {
			t.Errorf("event %q enriched despite zero limit", ev.ID)
		}
	}
	if atomic.LoadInt32(&placeHits) != 0 || len(g.calls) != 0 {
		t.Errorf("unexpected enrichment calls: place=%d geocode=%d", atomic.LoadInt32(&placeHits), len(g.calls))
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		c := New(Config{}, cache.New(time.Minute), nil)
		if _, err := c.Fetch(context.Background(), providers.FetchRequest{Query: "events"}); !errors.Is(err, providers.ErrNotConfigured) {
			t.Errorf("error = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("http 429", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()
		c := New(Config{APIKey: "k", BaseURL: server.URL}, cache.New(time.Minute), nil)
		if _, err := c.Fetch(context.Background(), providers.FetchRequest{Query: "events"}); !errors.Is(err, providers.ErrRateLimited) {
			t.Errorf("error = %v, want ErrRateLimited", err)
		}
	})

	t.Run("quota message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Your account has run out of searches."}`))
		}))
		defer server.Close()
		c := New(Config{APIKey: "k", BaseURL: server.URL}, cache.New(time.Minute), nil)
		if _, err := c.Fetch(context.Background(), providers.FetchRequest{Query: "events"}); !errors.Is(err, providers.ErrRateLimited) {
			t.Errorf("error = %v, want ErrRateLimited", err)
		}
	})

	t.Run("no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
		}))
		defer server.Close()
		c := New(Config{APIKey: "k", BaseURL: server.URL}, cache.New(time.Minute), nil)
		events, err := c.Fetch(context.Background(), providers.FetchRequest{Query: "events"})
		if err != nil || len(events) != 0 {
			t.Errorf("Fetch() = %v, %v; want empty, nil", events, err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()
		c := New(Config{APIKey: "k", BaseURL: server.URL}, cache.New(time.Minute), nil)
		if _, err := c.Fetch(context.Background(), providers.FetchRequest{Query: "events"}); providers.Classify(err) != providers.OutcomeTransient {
			t.Errorf("error = %v, want transient", err)
		}
	})
}

func TestSplitLocality(t *testing.T) {
	t.Parallel()

	tests := []struct{ line, city, country string }{
		{"Austin, TX", "Austin", "TX"},
		{"London, Greater London, UK", "London", "UK"},
		{"Online", "Online", ""},
	}
	for _, tt := range tests {
		city, country := splitLocality(tt.line)
		if city != tt.city || country != tt.country {
			t.Errorf("splitLocality(%q) = %q, %q", tt.line, city, country)
		}
	}
}
