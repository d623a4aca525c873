// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/logging"
)

// Cache lifetimes for geocoding results.
const (
	ReverseTTL        = 24 * time.Hour
	ReverseFailureTTL = time.Hour
	ForwardTTL        = 24 * time.Hour
	ForwardFailureTTL = time.Hour
)

// CachedGeocoder wraps a Geocoder with the shared TTL cache and swallows
// every failure. Callers get nil when nothing is known; they never see an error.
type CachedGeocoder struct {
	geocoder Geocoder
	cache    cache.Cacher
}

// NewCachedGeocoder creates a best-effort geocoder backed by c.
func NewCachedGeocoder(g Geocoder, c cache.Cacher) *CachedGeocoder {
	return &CachedGeocoder{geocoder: g, cache: c}
}

// ReverseKey is the cache key for a reverse lookup, rounded to 3 decimals.
func ReverseKey(lat, lon float64) string {
	return fmt.Sprintf("revgeo:%.3f:%.3f", Round(lat, 3), Round(lon, 3))
}

// ForwardKey is the cache key for a forward lookup.
func ForwardKey(text string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(text))
}

// ReverseGeocode returns the locality for a coordinate, or nil.
// Successes are cached for 24h per ~110 m cell and failures for 1h.
func (g *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) *Locality {
	v := g.cache.GetOrSetDynamic(ReverseKey(lat, lon), func() (interface{}, time.Duration) {
		loc, err := g.geocoder.Reverse(ctx, lat, lon)
		if err != nil {
			logging.Ctx(ctx).Debug().
				Err(err).
				Str("geocoder", g.geocoder.Name()).
				Float64("lat", lat).
				Float64("lon", lon).
				Msg("Reverse geocoding failed")
			return nil, failureTTL(err, ReverseFailureTTL)
		}
		return loc, ReverseTTL
	})

	loc, _ := v.(*Locality)
	return loc
}

// ForwardGeocode returns the coordinate for address text, or nil.
// Successes are cached for 24h and failures for 1h.
func (g *CachedGeocoder) ForwardGeocode(ctx context.Context, text string) *Point {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	v := g.cache.GetOrSetDynamic(ForwardKey(text), func() (interface{}, time.Duration) {
		p, err := g.geocoder.Forward(ctx, text)
		if err != nil {
			logging.Ctx(ctx).Debug().
				Err(err).
				Str("geocoder", g.geocoder.Name()).
				Str("text", text).
				Msg("Forward geocoding failed")
			return nil, failureTTL(err, ForwardFailureTTL)
		}
		return p, ForwardTTL
	})

	p, _ := v.(*Point)
	return p
}

// failureTTL is how long a failed lookup is remembered. A lookup abandoned
// by its caller says nothing about the address and is not cached.
func failureTTL(err error, ttl time.Duration) time.Duration {
	if errors.Is(err, context.Canceled) {
		return 0
	}
	return ttl
}
