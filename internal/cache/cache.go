// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/metrics"
)

// DefaultCleanupInterval is how often the janitor sweeps expired entries.
const DefaultCleanupInterval = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Options configures a Cache beyond its default TTL.
type Options struct {
	// Name labels the cache in Prometheus metrics. Empty disables metric export.
	Name string

	// DefaultTTL is used by Set. Zero means entries expire immediately.
	DefaultTTL time.Duration

	// CleanupInterval controls the janitor started by Serve. Defaults to 5 minutes.
	CleanupInterval time.Duration

	// SingleFlight makes concurrent GetOrSet misses for the same key share
	// one producer invocation.
	SingleFlight bool

	// Now overrides the clock. Tests use it to move time without sleeping.
	Now func() time.Time
}

// Cache provides a thread-safe in-memory cache with TTL support
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	stats   Stats

	name            string
	cleanupInterval time.Duration
	now             func() time.Time
	group           *singleflight.Group
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a new thread-safe in-memory cache with the given default TTL.
//
// Expired entries are removed lazily on read. Run the cache under a supervisor
// (see Serve) to also sweep entries that are never read again.
//
// Example:
//
//	c := cache.New(5 * time.Minute)
//	c.Set("key", value)
//	if data, ok := c.Get("key"); ok {
//	    // Use cached data
//	}
func New(ttl time.Duration) *Cache {
	return NewWithOptions(Options{DefaultTTL: ttl})
}

// NewWithOptions creates a cache configured by opts.
func NewWithOptions(opts Options) *Cache {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	c := &Cache{
		entries:         make(map[string]Entry),
		ttl:             opts.DefaultTTL,
		name:            opts.Name,
		cleanupInterval: interval,
		now:             now,
		stats: Stats{
			LastCleanup: now(),
		},
	}
	if opts.SingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// Get retrieves a value from the cache by key with automatic expiration checking.
//
// Behavior:
//   - Returns (nil, false) if key doesn't exist
//   - Returns (nil, false) if entry has expired (entry is deleted)
//   - Returns (data, true) if entry is valid, including a cached nil
//
// Example:
//
//	if data, ok := c.Get("revgeo:40.713:-74.006"); ok {
//	    return data.(*models.Locality)
//	}
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		removed := int64(0)
		c.mu.Lock()
		// Another writer may have refreshed the key between the two locks.
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			removed = 1
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction(removed)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value in the cache with the default TTL configured at cache creation.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value in the cache with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	size := int64(len(c.entries))
	c.mu.Unlock()

	c.recordSize(size)
}

// GetOrSet returns the fresh value stored under key, or runs producer, stores
// its result for ttl and returns it.
//
// A nil result is cached like any other value, so a failed lookup is not
// retried until ttl elapses. The cache lock is never held while producer runs.
// Without SingleFlight two concurrent misses may both run producer; the last
// write wins.
//
// Example:
//
//	loc := c.GetOrSet(key, 24*time.Hour, func() interface{} {
//	    l, err := geocoder.Reverse(ctx, lat, lon)
//	    if err != nil {
//	        return nil
//	    }
//	    return l
//	})
func (c *Cache) GetOrSet(key string, ttl time.Duration, producer func() interface{}) interface{} {
	return c.GetOrSetDynamic(key, func() (interface{}, time.Duration) {
		return producer(), ttl
	})
}

// GetOrSetDynamic is GetOrSet where the producer also decides how long its
// result stays fresh. Geocoding uses it to keep failures for less time than
// successes. A ttl <= 0 returns the value without storing it.
func (c *Cache) GetOrSetDynamic(key string, producer func() (interface{}, time.Duration)) interface{} {
	if value, ok := c.Get(key); ok {
		return value
	}

	load := func() interface{} {
		value, ttl := producer()
		if ttl > 0 {
			c.SetWithTTL(key, value, ttl)
		}
		return value
	}

	if c.group == nil {
		return load()
	}

	value, _, shared := c.group.Do(key, func() (interface{}, error) {
		// The previous flight for this key may have finished between our
		// miss and joining the group.
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		return load(), nil
	})
	if shared && c.name != "" {
		metrics.CacheSharedLoads.WithLabelValues(c.name).Inc()
	}
	return value
}

// peek reads a fresh entry without touching statistics.
func (c *Cache) peek(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Data, true
}

// Delete removes a specific cache entry by key.
//
// Safe to call with keys that do not exist. Used to drop cooldown flags and
// revoked tokens before their TTL.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	size := int64(len(c.entries))
	c.mu.Unlock()

	if existed {
		c.recordEviction(1)
	}
	c.recordSize(size)
}

// Clear removes all entries from the cache in a single atomic operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.recordEviction(evictions)
	c.recordSize(0)
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of current cache performance statistics.
//
// Returns:
//   - Hits: Number of successful cache retrievals
//   - Misses: Number of cache misses (key not found or expired)
//   - Evictions: Number of entries removed (manual + automatic)
//   - TotalKeys: Current number of entries in cache
//   - LastCleanup: Timestamp of most recent background cleanup
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Serve runs the janitor until ctx is cancelled. It implements suture.Service
// so the cache sweep is restarted by the supervisor like any other service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := c.cleanup(); removed > 0 {
				logging.Debug().
					Str("cache", c.String()).
					Int64("removed", removed).
					Int("remaining", c.Len()).
					Msg("Swept expired cache entries")
			}
		}
	}
}

// String returns the service name for supervisor logging.
func (c *Cache) String() string {
	if c.name == "" {
		return "cache-janitor"
	}
	return c.name + "-cache-janitor"
}

// cleanup removes all expired entries and returns how many were removed
func (c *Cache) cleanup() int64 {
	now := c.now()
	c.mu.Lock()
	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	size := int64(len(c.entries))
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()

	c.recordEviction(evictions)
	c.recordSize(size)
	return evictions
}

// recordHit increments the hit counter
func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()

	if c.name != "" {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	}
}

// recordMiss increments the miss counter
func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()

	if c.name != "" {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
	}
}

func (c *Cache) recordEviction(n int64) {
	if n == 0 {
		return
	}
	c.stats.mu.Lock()
	c.stats.Evictions += n
	c.stats.mu.Unlock()

	if c.name != "" {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
	}
}

func (c *Cache) recordSize(size int64) {
	c.stats.mu.Lock()
	c.stats.TotalKeys = size
	c.stats.mu.Unlock()

	if c.name != "" {
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
	}
}
