// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package cache

import "time"

// Cacher defines the cache operations the rest of the application depends on.
// Geocoders, provider adapters and the aggregation engine accept a Cacher so
// tests can hand them an isolated instance with a fake clock.
//
// Usage:
//
//	var c cache.Cacher = cache.New(3 * time.Minute)
//	c.SetWithTTL(cache.CooldownKey("serpapi"), true, 12*time.Hour)
//	if _, cooling := c.Get(cache.CooldownKey("serpapi")); cooling {
//	    // skip the provider
//	}
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// GetOrSet returns the cached value or stores and returns the producer's result.
	GetOrSet(key string, ttl time.Duration, producer func() interface{}) interface{}

	// GetOrSetDynamic is GetOrSet with a producer-chosen TTL.
	GetOrSetDynamic(key string, producer func() (interface{}, time.Duration)) interface{}

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}

// Verify interface implementations at compile time
var _ Cacher = (*Cache)(nil)
