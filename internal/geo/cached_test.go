// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
)

// stubGeocoder counts calls and answers from fixed tables.
type stubGeocoder struct {
	mu       sync.Mutex
	reverse  int
	forward  int
	locality *Locality
	points   map[string]*Point
}

func (s *stubGeocoder) Name() string { return "stub" }

func (s *stubGeocoder) Reverse(ctx context.Context, _, _ float64) (*Locality, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reverse++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.locality == nil {
		return nil, ErrNoMatch
	}
	return s.locality, nil
}

func (s *stubGeocoder) Forward(_ context.Context, text string) (*Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forward++
	if p, ok := s.points[text]; ok {
		return p, nil
	}
	return nil, errors.New("no result")
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClockedCache() (*cache.Cache, *testClock) {
	clock := &testClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	return cache.NewWithOptions(cache.Options{DefaultTTL: time.Minute, Now: clock.Now}), clock
}

func TestReverseKeyRounding(t *testing.T) {
	t.Parallel()

	if got := ReverseKey(40.71284, -74.00601); got != "revgeo:40.713:-74.006" {
		t.Errorf("ReverseKey() = %q", got)
	}
	if ReverseKey(40.71284, -74.00601) != ReverseKey(40.71251, -74.00649) {
		t.Error("expected nearby coordinates to share a key")
	}
	if got := ForwardKey("  Moody Center, Austin "); got != "geocode:moody center, austin" {
		t.Errorf("ForwardKey() = %q", got)
	}
}

func TestCachedReverseGeocode(t *testing.T) {
	t.Parallel()

	stub := &stubGeocoder{locality: &Locality{City: "Austin", State: "Texas"}}
	c, clock := newClockedCache()
	g := NewCachedGeocoder(stub, c)
	ctx := context.Background()

	loc := g.ReverseGeocode(ctx, 30.26721, -97.74312)
	if loc == nil || loc.City != "Austin" {
		t.Fatalf("ReverseGeocode() = %+v", loc)
	}

	// Same ~110 m cell is served from cache
	g.ReverseGeocode(ctx, 30.26749, -97.74338)
	clock.Advance(23 * time.Hour)
	g.ReverseGeocode(ctx, 30.2672, -97.7431)
	if stub.reverse != 1 {
		t.Errorf("expected 1 upstream call within 24h, got %d", stub.reverse)
	}

	clock.Advance(2 * time.Hour)
	g.ReverseGeocode(ctx, 30.2672, -97.7431)
	if stub.reverse != 2 {
		t.Errorf("expected refresh after 24h, got %d calls", stub.reverse)
	}
}

func TestCachedReverseGeocodeCachesFailure(t *testing.T) {
	t.Parallel()

	stub := &stubGeocoder{}
	c, clock := newClockedCache()
	g := NewCachedGeocoder(stub, c)

	if loc := g.ReverseGeocode(context.Background(), 0, 0); loc != nil {
		t.Errorf("expected nil locality, got %+v", loc)
	}
	g.ReverseGeocode(context.Background(), 0, 0)
	if stub.reverse != 1 {
		t.Errorf("expected failure to be cached, got %d calls", stub.reverse)
	}

	// Failures are kept for less time than successes
	clock.Advance(ReverseFailureTTL + time.Minute)
	g.ReverseGeocode(context.Background(), 0, 0)
	if stub.reverse != 2 {
		t.Errorf("expected failure to expire after %v, got %d calls", ReverseFailureTTL, stub.reverse)
	}
}

func TestCachedReverseGeocodeSkipsCancelled(t *testing.T) {
	t.Parallel()

	stub := &stubGeocoder{locality: &Locality{City: "Austin", State: "Texas"}}
	c, _ := newClockedCache()
	g := NewCachedGeocoder(stub, c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if loc := g.ReverseGeocode(ctx, 30.2672, -97.7431); loc != nil {
		t.Fatalf("expected nil locality for cancelled lookup, got %+v", loc)
	}

	loc := g.ReverseGeocode(context.Background(), 30.2672, -97.7431)
	if loc == nil || loc.City != "Austin" {
		t.Fatalf("ReverseGeocode() after cancelled lookup = %+v, want Austin", loc)
	}
	if stub.reverse != 2 {
		t.Errorf("expected the cancelled lookup not to be cached, got %d calls", stub.reverse)
	}
}

func TestCachedForwardGeocode(t *testing.T) {
	t.Parallel()

	stub := &stubGeocoder{points: map[string]*Point{"Moody Center, Austin": {Lat: 30.28, Lon: -97.73}}}
	c, clock := newClockedCache()
	g := NewCachedGeocoder(stub, c)
	ctx := context.Background()

	if p := g.ForwardGeocode(ctx, "Moody Center, Austin"); p == nil || p.Lat != 30.28 {
		t.Fatalf("ForwardGeocode() = %+v", p)
	}
	if p := g.ForwardGeocode(ctx, "Unknown Hall"); p != nil {
		t.Fatalf("expected nil for unknown address, got %+v", p)
	}
	if p := g.ForwardGeocode(ctx, "   "); p != nil {
		t.Fatalf("expected nil for blank text, got %+v", p)
	}
	if stub.forward != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", stub.forward)
	}

	// Failure expires after 1h, success survives
	clock.Advance(90 * time.Minute)
	g.ForwardGeocode(ctx, "Moody Center, Austin")
	g.ForwardGeocode(ctx, "Unknown Hall")
	if stub.forward != 3 {
		t.Errorf("expected only the failed lookup to be retried, got %d calls", stub.forward)
	}
}
