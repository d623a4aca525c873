// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package cache provides the thread-safe in-memory TTL cache shared by every
component of the service.

Besides caching API results the cache is the only shared mutable state in the
process: provider cooldown flags, OAuth access tokens, geocoding results and
last-known-good scraper results all live here under namespaced keys.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Per-entry time-to-live with lazy expiration on read
  - GetOrSet / GetOrSetDynamic that cache nil results (negative caching)
  - Optional single-flight loading via golang.org/x/sync/singleflight
  - A janitor that runs as a suture service (Serve)
  - Prometheus hit/miss/eviction/size metrics per named cache
  - An injectable clock for deterministic TTL tests

# Key Namespaces

	events:<hash>            aggregated result for one query descriptor (180s)
	revgeo:<lat3>:<lon3>     reverse geocoding result (24h)
	geocode:<text>           forward geocoding result (24h, failures 1h)
	latlon:<link>            place-link coordinates (1h)
	scrape_ev:<hl>:<gl>:<q>  fresh scraper result (5m)
	cooldown:<provider>      presence flag while a provider is rate limited
	token:<provider>         provider access token
	stale:<provider>:<q>     last non-empty provider result (15m)

# Usage Example

	c := cache.NewWithOptions(cache.Options{
	    Name:         "shared",
	    DefaultTTL:   3 * time.Minute,
	    SingleFlight: true,
	})

	loc := c.GetOrSet(key, 24*time.Hour, func() interface{} {
	    return lookup(ctx)
	})

# Limitations

Keys are never bounded; memory grows with the number of distinct queries and
coordinates seen within the longest TTL. The janitor only reclaims expired
entries.
*/
package cache
