// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package serpapi

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/models"
)

// enrich fills coordinates for up to limit targets in parallel and waits for
// all of them. Each goroutine writes only its own slot, so events needs no lock.
func (c *Client) enrich(ctx context.Context, events []models.Event, targets []enrichTarget, limit int) {
	if limit <= 0 || len(targets) == 0 {
		return
	}
	if len(targets) > limit {
		targets = targets[:limit]
	}

	points := make([]*geo.Point, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEnrichConcurrency)

	for i, t := range targets {
		g.Go(func() error {
			if t.placeLink != "" {
				points[i] = c.resolvePlace(gctx, t.placeLink)
			}
			if points[i] == nil && t.address != "" && c.geocoder != nil {
				points[i] = c.geocoder.ForwardGeocode(gctx, t.address)
			}
			// failures only leave coordinates empty
			return nil
		})
	}
	_ = g.Wait()

	for i, p := range points {
		if p == nil {
			continue
		}
		idx := targets[i].index
		events[idx] = events[idx].WithCoordinates(*p)
	}
}
