// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry with promauto at package
initialization, so importing the package is enough to expose them.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Upstream provider calls by outcome (ok, rate_limited, transient, not_configured, malformed)
  - Provider cooldown activations and aggregation fallback steps
  - Aggregation run duration and result sizes
  - Cache hit/miss/eviction counts per named cache
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

	start := time.Now()
	events, err := provider.Fetch(ctx, req)
	metrics.RecordProviderCall(provider.Name(), outcome, time.Since(start), len(events))

# Useful Queries

Provider rate limiting over the last hour:

	sum by (provider) (increase(provider_cooldowns_total[1h]))

Share of requests served from the scraping fallback:

	rate(aggregation_fallbacks_total{kind="scraper"}[5m])
	  / rate(aggregation_cache_results_total{result="miss"}[5m])
*/
package metrics
