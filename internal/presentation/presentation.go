// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package presentation

import (
	"math"

	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/models"
)

// DistancePlaces is the precision of distance_km in responses.
const DistancePlaces = 2

// MinSpan keeps a single-point viewport from collapsing to zero size.
const MinSpan = 0.0001

// Trim truncates events to limit. A limit of zero or less keeps everything.
func Trim(events []models.RankedEvent, limit int) []models.RankedEvent {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}

// RoundDistances returns a copy of events with distances rounded for display.
func RoundDistances(events []models.RankedEvent) []models.RankedEvent {
	out := make([]models.RankedEvent, len(events))
	for i, ev := range events {
		if ev.DistanceKm != nil {
			ev.DistanceKm = models.Float(geo.Round(*ev.DistanceKm, DistancePlaces))
		}
		out[i] = ev
	}
	return out
}

// ComputeViewport returns the bounding box and center of every event with
// coordinates, or nil when none have any.
func ComputeViewport(events []models.RankedEvent) *models.ViewportSummary {
	var (
		found          bool
		minLat, maxLat float64
		minLon, maxLon float64
	)
	for i := range events {
		if !events[i].HasCoordinates() {
			continue
		}
		lat, lon := *events[i].Latitude, *events[i].Longitude
		if !found {
			minLat, maxLat, minLon, maxLon = lat, lat, lon, lon
			found = true
			continue
		}
		minLat = math.Min(minLat, lat)
		maxLat = math.Max(maxLat, lat)
		minLon = math.Min(minLon, lon)
		maxLon = math.Max(maxLon, lon)
	}
	if !found {
		return nil
	}

	return &models.ViewportSummary{
		MinLat:    minLat,
		MaxLat:    maxLat,
		MinLon:    minLon,
		MaxLon:    maxLon,
		CenterLat: (minLat + maxLat) / 2,
		CenterLon: (minLon + maxLon) / 2,
		SpanLat:   math.Max(MinSpan, maxLat-minLat),
		SpanLon:   math.Max(MinSpan, maxLon-minLon),
	}
}

// Flags carries the fallback indicators of one aggregation run.
type Flags struct {
	SerpapiExhausted bool
	ScraperFallback  bool
	ScraperLimited   bool
}

// BuildResult trims and rounds the ranked events and wraps them in a Result.
func BuildResult(events []models.RankedEvent, limit int, flags Flags) *models.Result {
	data := RoundDistances(Trim(events, limit))
	return &models.Result{
		Total:            len(data),
		Data:             data,
		SerpapiExhausted: flags.SerpapiExhausted,
		ScraperFallback:  flags.ScraperFallback,
		ScraperLimited:   flags.ScraperLimited,
		Viewport:         ComputeViewport(data),
	}
}

// EventsResponse is the wire shape of /api/v1/events. Events mirrors Data
// for clients that still read the older field name.
type EventsResponse struct {
	Total            int                     `json:"total"`
	Data             []models.RankedEvent    `json:"data"`
	Events           []models.RankedEvent    `json:"events"`
	SerpapiExhausted bool                    `json:"serpapi_exhausted,omitempty"`
	ScraperFallback  bool                    `json:"scraper_fallback,omitempty"`
	ScraperLimited   bool                    `json:"scraper_limited,omitempty"`
	Viewport         *models.ViewportSummary `json:"viewport,omitempty"`
}

// NewEventsResponse converts a Result into its wire shape. Empty results
// serialize as [] rather than null.
func NewEventsResponse(r *models.Result) EventsResponse {
	if r == nil {
		r = &models.Result{}
	}
	data := r.Data
	if data == nil {
		data = []models.RankedEvent{}
	}
	return EventsResponse{
		Total:            r.Total,
		Data:             data,
		Events:           data,
		SerpapiExhausted: r.SerpapiExhausted,
		ScraperFallback:  r.ScraperFallback,
		ScraperLimited:   r.ScraperLimited,
		Viewport:         r.Viewport,
	}
}
