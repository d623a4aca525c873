// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package aggregate

import (
	"sort"

	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/models"
)

// distanceFrom returns the distance of ev from user, or nil when either
// position is unknown.
func distanceFrom(user *geo.Point, ev *models.Event) *float64 {
	if user == nil || !ev.HasCoordinates() {
		return nil
	}
	return models.Float(user.DistanceKm(ev.Point()))
}

// FilterViewport keeps the events inside box. When none are inside but some
// have coordinates, it returns the n events nearest the box center instead
// and reports nearest as true.
func FilterViewport(events []models.RankedEvent, box geo.BoundingBox, n int) (kept []models.RankedEvent, nearest bool) {
	var located []models.RankedEvent
	for _, ev := range events {
		if !ev.HasCoordinates() {
			continue
		}
		located = append(located, ev)
		if box.Contains(*ev.Latitude, *ev.Longitude) {
			kept = append(kept, ev)
		}
	}
	if len(kept) > 0 || len(located) == 0 {
		return kept, false
	}

	center := box.Center()
	sort.SliceStable(located, func(i, j int) bool {
		return center.DistanceKm(located[i].Point()) < center.DistanceKm(located[j].Point())
	})
	if len(located) > n {
		located = located[:n]
	}
	return located, true
}

// Rank orders events for the response. With user coordinates the first
// ladder radius holding at least MinLocal events (or the last radius)
// defines the local set, which comes first sorted by distance then start;
// everything else follows, events with a distance before those without.
// Without coordinates events are sorted by start time only.
func (p Policy) Rank(events []models.RankedEvent, hasUser bool) []models.RankedEvent {
	out := make([]models.RankedEvent, len(events))
	copy(out, events)
	if !hasUser {
		sort.SliceStable(out, func(i, j int) bool {
			return p.startKey(&out[i]) < p.startKey(&out[j])
		})
		return out
	}

	radius := p.localRadius(out)
	var local, rest []models.RankedEvent
	for _, ev := range out {
		if ev.DistanceKm != nil && *ev.DistanceKm <= radius {
			local = append(local, ev)
		} else {
			rest = append(rest, ev)
		}
	}

	sort.SliceStable(local, func(i, j int) bool {
		di, dj := *local[i].DistanceKm, *local[j].DistanceKm
		if di != dj {
			return di < dj
		}
		return p.startKey(&local[i]) < p.startKey(&local[j])
	})
	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i].DistanceKm, rest[j].DistanceKm
		if (a == nil) != (b == nil) {
			return a != nil
		}
		if a != nil && *a != *b {
			return *a < *b
		}
		return p.startKey(&rest[i]) < p.startKey(&rest[j])
	})

	return append(local, rest...)
}

// localRadius walks the ladder and returns the first radius capturing
// MinLocal events, or the widest one.
func (p Policy) localRadius(events []models.RankedEvent) float64 {
	var radius float64
	for _, radius = range p.RadiusLadderKm {
		n := 0
		for i := range events {
			if d := events[i].DistanceKm; d != nil && *d <= radius {
				n++
			}
		}
		if n >= p.MinLocal {
			break
		}
	}
	return radius
}

func (p Policy) startKey(ev *models.RankedEvent) string {
	if ev.Start == "" {
		return p.MissingStart
	}
	return ev.Start
}
