// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"context"
	"errors"
)

// ErrNoMatch is returned when a geocoder answers but finds nothing.
var ErrNoMatch = errors.New("geocoder: no match")

// ErrGeocoderRateLimited is returned when the geocoding service answers 429.
var ErrGeocoderRateLimited = errors.New("geocoder: rate limited")

// Locality is the coarse place a coordinate falls in. Empty fields are unknown.
type Locality struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Empty reports whether neither city nor state is known.
func (l *Locality) Empty() bool {
	return l == nil || (l.City == "" && l.State == "")
}

// Geocoder defines the interface for geocoding services.
// Implementations talk to a remote service and may fail; use CachedGeocoder
// for the best-effort, never-failing variant the rest of the code relies on.
type Geocoder interface {
	// Reverse resolves a coordinate to the locality containing it.
	Reverse(ctx context.Context, lat, lon float64) (*Locality, error)

	// Forward resolves free-form address text to a coordinate.
	Forward(ctx context.Context, text string) (*Point, error)

	// Name returns the service name for logging and metrics.
	Name() string
}
