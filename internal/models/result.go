// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package models

// Result is the aggregated, ranked answer to a Query. Cached results are
// shared between requests and must be treated as read-only.
type Result struct {
	Total            int              `json:"total"`
	Data             []RankedEvent    `json:"data"`
	SerpapiExhausted bool             `json:"serpapi_exhausted,omitempty"` // primary provider cooling down or rate limited
	ScraperFallback  bool             `json:"scraper_fallback,omitempty"`  // results came from the scraping fallback
	ScraperLimited   bool             `json:"scraper_limited,omitempty"`   // fallback produced fewer than 3 events
	Viewport         *ViewportSummary `json:"viewport,omitempty"`
}

// ViewportSummary is the bounding box and center of the returned events,
// used by clients to fit the map. Spans never drop below 0.0001 degrees.
type ViewportSummary struct {
	MinLat    float64 `json:"min_lat"`
	MaxLat    float64 `json:"max_lat"`
	MinLon    float64 `json:"min_lon"`
	MaxLon    float64 `json:"max_lon"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	SpanLat   float64 `json:"span_lat"`
	SpanLon   float64 `json:"span_lon"`
}

// Events returns the plain events of the result in ranked order.
func (r *Result) Events() []Event {
	out := make([]Event, len(r.Data))
	for i := range r.Data {
		out[i] = r.Data[i].Event
	}
	return out
}
