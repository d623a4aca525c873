// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Upstream provider calls, cooldowns and fallbacks
// - Aggregation runs
// - Cache efficiency
// - Circuit breakers

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}, // aggregation can wait on slow upstreams
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the inbound rate limiter",
		},
		[]string{"endpoint"},
	)

	// Upstream Provider Metrics
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of upstream provider calls by outcome",
		},
		[]string{"provider", "outcome"}, // ok, rate_limited, transient, not_configured, malformed
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Duration of upstream provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider"},
	)

	ProviderEventsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_events_returned_total",
			Help: "Total number of normalized events returned by upstream providers",
		},
		[]string{"provider"},
	)

	ProviderItemsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_items_skipped_total",
			Help: "Total number of malformed upstream items skipped during normalization",
		},
		[]string{"provider"},
	)

	ProviderCooldowns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cooldowns_total",
			Help: "Total number of cooldown activations after upstream rate limiting",
		},
		[]string{"provider"},
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of uncached aggregation runs in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	AggregationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_result_events",
			Help:    "Number of events returned per aggregation run",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 40, 80},
		},
	)

	AggregationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_fallbacks_total",
			Help: "Total number of fallback steps taken during aggregation",
		},
		[]string{"kind"}, // no_location, broad, scraper, stale, viewport_nearest
	)

	AggregationCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_cache_results_total",
			Help: "Aggregation result cache lookups",
		},
		[]string{"result"}, // hit, miss
	)

	// Geocoding Metrics
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Total number of geocoding lookups sent upstream",
		},
		[]string{"direction", "status"}, // direction: forward, reverse; status: success, failure
	)

	// Cache Metrics (General)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	CacheSharedLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_shared_loads_total",
			Help: "Total number of cache misses that joined an in-flight producer call",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "eventscope_info",
			Help: "Build information, constant 1",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordProviderCall records one upstream provider call with its classified outcome
// and the number of events it produced.
func RecordProviderCall(provider, outcome string, duration time.Duration, events int) {
	ProviderRequests.WithLabelValues(provider, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if events > 0 {
		ProviderEventsReturned.WithLabelValues(provider).Add(float64(events))
	}
}

// RecordSkippedItem records a malformed upstream item that was dropped
func RecordSkippedItem(provider string) {
	ProviderItemsSkipped.WithLabelValues(provider).Inc()
}

// RecordCooldown records a provider entering its rate-limit cooldown
func RecordCooldown(provider string) {
	ProviderCooldowns.WithLabelValues(provider).Inc()
}

// RecordFallback records a fallback step taken by the aggregation engine
func RecordFallback(kind string) {
	AggregationFallbacks.WithLabelValues(kind).Inc()
}

// RecordAggregation records the duration and size of an uncached aggregation run
func RecordAggregation(duration time.Duration, events int) {
	AggregationDuration.Observe(duration.Seconds())
	AggregationResults.Observe(float64(events))
}

// RecordAggregationCache records an aggregation result cache lookup
func RecordAggregationCache(hit bool) {
	if hit {
		AggregationCacheResults.WithLabelValues("hit").Inc()
		return
	}
	AggregationCacheResults.WithLabelValues("miss").Inc()
}

// RecordGeocode records an upstream geocoding lookup
func RecordGeocode(direction string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	GeocodeRequests.WithLabelValues(direction, status).Inc()
}
