// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package models

import (
	"sort"
	"strings"

	"github.com/tomtom215/eventscope/internal/geo"
)

// Query describes one "events near me" request. Two queries that are equal
// after Normalized produce the same cache key.
type Query struct {
	Text     string           `json:"q"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Chips    []string         `json:"chips,omitempty"`    // upstream filter chips, e.g. date:today
	Viewport *geo.BoundingBox `json:"viewport,omitempty"` // visible map area
	User     *geo.Point       `json:"user,omitempty"`     // requesting user's location
}

// HasUserLocation reports whether the query carries user coordinates.
func (q *Query) HasUserLocation() bool {
	return q.User != nil
}

// HasViewport reports whether the query is restricted to a map viewport.
func (q *Query) HasViewport() bool {
	return q.Viewport != nil
}

// Normalized returns the canonical form used for cache keys: trimmed text,
// page at least 1, chips sorted and de-duplicated, user coordinates rounded
// to 3 decimals. The receiver is not modified.
func (q Query) Normalized() Query {
	n := q
	n.Text = strings.TrimSpace(q.Text)
	if n.Page < 1 {
		n.Page = 1
	}
	n.Chips = NormalizeChips(q.Chips)
	if q.User != nil {
		n.User = &geo.Point{Lat: geo.Round(q.User.Lat, 3), Lon: geo.Round(q.User.Lon, 3)}
	}
	if q.Viewport != nil {
		vp := *q.Viewport
		n.Viewport = &vp
	}
	return n
}

// NormalizeChips trims, drops empties, de-duplicates and sorts chips so that
// their order never affects caching.
func NormalizeChips(chips []string) []string {
	if len(chips) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(chips))
	out := make([]string, 0, len(chips))
	for _, c := range chips {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// SplitChips parses the comma-separated chip list used on the wire.
func SplitChips(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeChips(strings.Split(raw, ","))
}
