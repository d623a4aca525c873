// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package models

import "github.com/tomtom215/eventscope/internal/geo"

// Event is a normalized upstream event. Providers build it once during
// normalization and nothing mutates it afterwards.
type Event struct {
	ID          string   `json:"id"`     // provider-qualified id or canonical link
	Source      string   `json:"source"` // google_events, scraperapi_google, sportsdb
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Start       string   `json:"start,omitempty"` // ISO-8601, or raw provider text when unparseable
	End         string   `json:"end,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	Venue       string   `json:"venue,omitempty"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Category    string   `json:"category,omitempty"`
	Image       string   `json:"image,omitempty"`
	Price       string   `json:"price,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// Point returns the event coordinates. Only valid when HasCoordinates is true.
func (e *Event) Point() geo.Point {
	return geo.Point{Lat: *e.Latitude, Lon: *e.Longitude}
}

// WithCoordinates returns a copy of e located at p.
func (e Event) WithCoordinates(p geo.Point) Event {
	lat, lon := p.Lat, p.Lon
	e.Latitude = &lat
	e.Longitude = &lon
	return e
}

// RankedEvent carries an Event through one request together with its
// distance from the requesting user. The distance is request-scoped and is
// never part of the event's identity.
type RankedEvent struct {
	Event
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Float returns a pointer to v. Providers use it when filling optional coordinates.
func Float(v float64) *float64 {
	return &v
}
