// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package middleware provides the infrastructure HTTP middleware shared by the
API router.

Key Components:

  - RequestID: propagates or generates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - Prometheus: request count, latency and in-flight gauge per route pattern
  - PerformanceMonitor: sliding window of recent requests with percentile
    statistics, served by /api/v1/health/performance
  - Compression: pooled gzip writers for clients sending Accept-Encoding: gzip

Every middleware has the standard func(http.Handler) http.Handler shape and is
mounted with chi's Use:

	perf := middleware.NewPerformanceMonitor(1000)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Prometheus)
	r.Use(perf.Middleware)
	r.Use(middleware.Compression)

Metrics and performance samples are labelled with the chi route pattern
(/api/v1/sports/{sport}/events) rather than the raw path. Requests that match
no route share the "unmatched" label.
*/
package middleware
