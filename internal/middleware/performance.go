// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/eventscope/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged.
// Aggregation legitimately waits on upstream search calls, so it is generous.
const DefaultSlowRequestThreshold = 5 * time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// EndpointStats summarizes the retained samples of one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MinDuration  int64   `json:"min_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests for the
// /health/performance endpoint.
type PerformanceMonitor struct {
	mu         sync.RWMutex
	samples    []RequestSample
	maxSamples int
	slow       time.Duration
	now        func() time.Time
}

// NewPerformanceMonitor retains up to maxSamples requests.
func NewPerformanceMonitor(maxSamples int) *PerformanceMonitor {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &PerformanceMonitor{
		samples:    make([]RequestSample, 0, maxSamples),
		maxSamples: maxSamples,
		slow:       DefaultSlowRequestThreshold,
		now:        time.Now,
	}
}

// SetSlowThreshold changes the slow request log threshold; zero disables it.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	pm.slow = d
	pm.mu.Unlock()
}

// RecordRequest adds a sample, dropping the oldest when the window is full.
func (pm *PerformanceMonitor) RecordRequest(s RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.samples) == pm.maxSamples {
		copy(pm.samples, pm.samples[1:])
		pm.samples = pm.samples[:len(pm.samples)-1]
	}
	pm.samples = append(pm.samples, s)
}

// GetStats returns per-endpoint statistics, busiest endpoint first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	byEndpoint := make(map[string][]RequestSample)
	for _, s := range pm.samples {
		key := s.Method + " " + s.Route
		byEndpoint[key] = append(byEndpoint[key], s)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, samples := range byEndpoint {
		durations := make([]int64, len(samples))
		var sum, errs int64
		for i, s := range samples {
			durations[i] = s.DurationMS
			sum += s.DurationMS
			if s.StatusCode >= http.StatusInternalServerError {
				errs++
			}
		}
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			ErrorCount:   errs,
			AvgDuration:  float64(sum) / float64(len(durations)),
			P50Duration:  percentile(durations, 0.50),
			P95Duration:  percentile(durations, 0.95),
			P99Duration:  percentile(durations, 0.99),
			MinDuration:  durations[0],
			MaxDuration:  durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// GetRecentSamples returns up to n of the newest samples, oldest first.
func (pm *PerformanceMonitor) GetRecentSamples(n int) []RequestSample {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if n > len(pm.samples) {
		n = len(pm.samples)
	}
	if n <= 0 {
		return []RequestSample{}
	}
	recent := make([]RequestSample, n)
	copy(recent, pm.samples[len(pm.samples)-n:])
	return recent
}

// Middleware records every request that passes through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		elapsed := pm.now().Sub(start)
		route := routeLabel(r)
		pm.RecordRequest(RequestSample{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: rec.status,
			Timestamp:  start,
		})

		pm.mu.RLock()
		slow := pm.slow
		pm.mu.RUnlock()
		if slow > 0 && elapsed > slow {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from an ascending slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
