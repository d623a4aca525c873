// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"
	"time"
)

// ProviderStatus describes one event provider.
type ProviderStatus struct {
	Name        string `json:"name"`
	CoolingDown bool   `json:"cooling_down"`
}

// CacheStatus is a snapshot of the shared cache counters.
type CacheStatus struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Keys        int64     `json:"keys"`
	HitRate     float64   `json:"hit_rate"`
	LastCleanup time.Time `json:"last_cleanup,omitempty"`
}

// ProvidersStatus is the body of GET /providers/status.
type ProvidersStatus struct {
	Providers []ProviderStatus  `json:"providers"`
	Breakers  map[string]string `json:"breakers"`
	Cache     *CacheStatus      `json:"cache,omitempty"`
}

// ProvidersStatus reports provider cooldowns, circuit breaker states and
// cache statistics.
//
// @Summary Provider status
// @Description Shows which event providers are in a rate-limit cooldown, the state of every circuit breaker, and shared cache counters.
// @Tags Operations
// @Produce json
// @Success 200 {object} APIResponse{data=ProvidersStatus}
// @Router /providers/status [get]
func (h *Handler) ProvidersStatus(w http.ResponseWriter, r *http.Request) {
	status := ProvidersStatus{
		Providers: []ProviderStatus{},
		Breakers:  map[string]string{},
	}

	if h.providers != nil {
		for _, name := range h.providers.Names() {
			ps := ProviderStatus{Name: name}
			if h.events != nil {
				ps.CoolingDown = h.events.CoolingDown(name)
			}
			status.Providers = append(status.Providers, ps)
		}
		for name, state := range h.providers.BreakerStates() {
			status.Breakers[name] = state
		}
	}

	if h.cache != nil {
		stats := h.cache.GetStats()
		status.Cache = &CacheStatus{
			Hits:        stats.Hits,
			Misses:      stats.Misses,
			Evictions:   stats.Evictions,
			Keys:        stats.TotalKeys,
			HitRate:     h.cache.HitRate(),
			LastCleanup: stats.LastCleanup,
		}
	}

	NewResponseWriter(w, r).Success(status)
}
