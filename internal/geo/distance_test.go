// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{name: "same point", lat1: 40.7128, lon1: -74.0060, lat2: 40.7128, lon2: -74.0060, want: 0, tolerance: 1e-9},
		{name: "new york to los angeles", lat1: 40.7128, lon1: -74.0060, lat2: 34.0522, lon2: -118.2437, want: 3936, tolerance: 5},
		{name: "london to paris", lat1: 51.5074, lon1: -0.1278, lat2: 48.8566, lon2: 2.3522, want: 344, tolerance: 2},
		{name: "one degree of latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111.19, tolerance: 0.01},
		{name: "antipodal", lat1: 0, lon1: 0, lat2: 0, lon2: 180, want: math.Pi * EarthRadiusKm, tolerance: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineKm() = %.4f, want %.4f ± %.4f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	t.Parallel()

	a := HaversineKm(30.2672, -97.7431, 29.7604, -95.3698)
	b := HaversineKm(29.7604, -95.3698, 30.2672, -97.7431)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestPointDistanceKm(t *testing.T) {
	t.Parallel()

	p := Point{Lat: 0, Lon: 0}
	q := Point{Lat: 1, Lon: 0}
	if got := p.DistanceKm(q); math.Abs(got-111.19) > 0.01 {
		t.Errorf("DistanceKm() = %v", got)
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{40.712776, 3, 40.713},
		{-74.005974, 3, -74.006},
		{12.344999, 2, 12.34},
		{12.345001, 2, 12.35},
		{5, 2, 5},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestBoundingBoxContains(t *testing.T) {
	t.Parallel()

	box := BoundingBox{MinLat: 30, MaxLat: 31, MinLon: -98, MaxLon: -97}

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{name: "inside", lat: 30.5, lon: -97.5, want: true},
		{name: "min corner inclusive", lat: 30, lon: -98, want: true},
		{name: "max corner inclusive", lat: 31, lon: -97, want: true},
		{name: "north of box", lat: 31.0001, lon: -97.5, want: false},
		{name: "west of box", lat: 30.5, lon: -98.0001, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := box.Contains(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxCenterAndValid(t *testing.T) {
	t.Parallel()

	box := BoundingBox{MinLat: 30, MaxLat: 32, MinLon: -98, MaxLon: -96}
	if c := box.Center(); c.Lat != 31 || c.Lon != -97 {
		t.Errorf("Center() = %+v", c)
	}
	if !box.Valid() {
		t.Error("expected box to be valid")
	}

	inverted := BoundingBox{MinLat: 32, MaxLat: 30, MinLon: -98, MaxLon: -96}
	if inverted.Valid() {
		t.Error("expected inverted box to be invalid")
	}

	outOfRange := BoundingBox{MinLat: -95, MaxLat: 30, MinLon: -98, MaxLon: -96}
	if outOfRange.Valid() {
		t.Error("expected out-of-range box to be invalid")
	}
}

func TestPointValid(t *testing.T) {
	t.Parallel()

	if !(Point{Lat: 90, Lon: -180}).Valid() {
		t.Error("expected boundary point to be valid")
	}
	if (Point{Lat: 91, Lon: 0}).Valid() {
		t.Error("expected latitude 91 to be invalid")
	}
	if (Point{Lat: math.NaN(), Lon: 0}).Valid() {
		t.Error("expected NaN to be invalid")
	}
}
