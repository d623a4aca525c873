// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package aggregate implements the "events near me" engine.

An Engine turns a models.Query into a ranked models.Result:

 1. Serve a cached result for the normalized query if one is fresh.
 2. Build query variants from the user's reverse-geocoded city and state,
    most local first, with the bare query last.
 3. Fan out to the primary provider over variants and two result offsets
    within a call budget, stopping early once enough local events are found.
 4. Retry without the location hint, then once more with the bare query.
 5. Fall back to the scraping provider, or to its last good answer.
 6. Apply the viewport filter, falling back to the events nearest its center.
 7. Rank locals first using a widening radius ladder, then trim and cache.

Rate limiting is remembered as a cooldown flag in the shared cache, so a
provider that ran out of quota is skipped by every request until the flag
expires. No provider error ever escapes Aggregate; failures show up as
fewer events and as the result's fallback flags.

Every threshold lives in Policy:

	engine := aggregate.NewEngine(serp, scraper, geocoder, sharedCache, aggregate.DefaultPolicy())
	result := engine.Aggregate(ctx, models.Query{Text: "jazz", User: &geo.Point{Lat: 30.27, Lon: -97.74}})
*/
package aggregate
