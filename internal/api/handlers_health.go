// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/eventscope/internal/middleware"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":   true,
		"version": h.cfg.Version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service is ready to handle traffic
//
// Upstream providers are not probed: an unreachable provider degrades
// results but never makes the service unready.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK once the aggregation engine is wired. Returns 503 if not ready.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is ready"
// @Failure 503 {object} APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.events == nil {
		rw.ServiceUnavailable("aggregation engine not ready")
		return
	}

	var providers []string
	if h.providers != nil {
		providers = h.providers.Names()
	}
	rw.Success(map[string]interface{}{
		"ready":          true,
		"providers":      providers,
		"cache_attached": h.cache != nil,
		"uptime":         time.Since(h.startTime).Seconds(),
	})
}

// PerformanceReport is the body of GET /health/performance.
type PerformanceReport struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Recent    []middleware.RequestSample `json:"recent"`
}

// HealthPerformance returns per-route latency percentiles collected by the
// performance middleware.
//
// @Summary Request latency statistics
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=PerformanceReport}
// @Router /health/performance [get]
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(PerformanceReport{
		Endpoints: h.perfMon.GetStats(),
		Recent:    h.perfMon.GetRecentSamples(20),
	})
}
