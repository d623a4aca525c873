// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package aggregate

import (
	"errors"
	"fmt"
	"time"
)

// Policy holds every threshold the engine uses. The zero value is not
// usable; start from DefaultPolicy.
type Policy struct {
	// ResultTTL is how long a finished Result is served from cache.
	ResultTTL time.Duration `koanf:"result_ttl"`

	// LocalRadiusKm counts an event as local during fan-out.
	LocalRadiusKm float64 `koanf:"local_radius_km"`

	// MinLocal is the number of events the ranking radius must capture.
	// Fan-out stops early once max(2*MinLocal, limit) locals are found.
	MinLocal int `koanf:"min_local"`

	// RadiusLadderKm is tried in order when choosing the local radius.
	RadiusLadderKm []float64 `koanf:"radius_ladder_km"`

	// PageSize is the upstream offset step.
	PageSize int `koanf:"page_size"`

	CallBudget          int `koanf:"call_budget"`
	ViewportCallBudget  int `koanf:"viewport_call_budget"`
	EnrichLimit         int `koanf:"enrich_limit"`
	ViewportEnrichLimit int `koanf:"viewport_enrich_limit"`

	// PrimaryCooldown is set after the primary provider rate limits us.
	PrimaryCooldown time.Duration `koanf:"primary_cooldown"`

	// FallbackCooldown is set after the scraping fallback fails.
	FallbackCooldown time.Duration `koanf:"fallback_cooldown"`

	// StaleTTL keeps the last non-empty fallback result per query.
	StaleTTL time.Duration `koanf:"stale_ttl"`

	// LimitedThreshold flags fallback results smaller than this as limited.
	LimitedThreshold int `koanf:"limited_threshold"`

	// ViewportFallbackDefault and ViewportFallbackMax size the
	// nearest-to-center subset when no event falls inside the viewport.
	ViewportFallbackDefault int `koanf:"viewport_fallback_default"`
	ViewportFallbackMax     int `koanf:"viewport_fallback_max"`

	// DefaultQuery replaces blank query text. Queries lacking QueryKeyword
	// are prefixed with QueryPrefix.
	DefaultQuery string `koanf:"default_query"`
	QueryKeyword string `koanf:"query_keyword"`
	QueryPrefix  string `koanf:"query_prefix"`

	// MissingStart sorts events without a start time after dated ones.
	MissingStart string `koanf:"missing_start"`
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ResultTTL:               180 * time.Second,
		LocalRadiusKm:           120,
		MinLocal:                5,
		RadiusLadderKm:          []float64{50, 100, 120, 250, 500},
		PageSize:                10,
		CallBudget:              6,
		ViewportCallBudget:      10,
		EnrichLimit:             6,
		ViewportEnrichLimit:     40,
		PrimaryCooldown:         12 * time.Hour,
		FallbackCooldown:        90 * time.Second,
		StaleTTL:                15 * time.Minute,
		LimitedThreshold:        3,
		ViewportFallbackDefault: 20,
		ViewportFallbackMax:     40,
		DefaultQuery:            "events",
		QueryKeyword:            "event",
		QueryPrefix:             "events",
		MissingStart:            "9999",
	}
}

// Validate reports the first threshold that would break the engine.
func (p Policy) Validate() error {
	if p.ResultTTL <= 0 {
		return errors.New("result_ttl must be positive")
	}
	if p.LocalRadiusKm <= 0 {
		return errors.New("local_radius_km must be positive")
	}
	if p.MinLocal < 1 {
		return errors.New("min_local must be at least 1")
	}
	if len(p.RadiusLadderKm) == 0 {
		return errors.New("radius_ladder_km must not be empty")
	}
	for i, r := range p.RadiusLadderKm {
		if r <= 0 {
			return fmt.Errorf("radius_ladder_km[%d] must be positive", i)
		}
		if i > 0 && r <= p.RadiusLadderKm[i-1] {
			return fmt.Errorf("radius_ladder_km must be strictly ascending (got %v after %v)", r, p.RadiusLadderKm[i-1])
		}
	}
	if p.PageSize < 1 {
		return errors.New("page_size must be at least 1")
	}
	if p.CallBudget < 1 || p.ViewportCallBudget < 1 {
		return errors.New("call budgets must be at least 1")
	}
	if p.EnrichLimit < 0 || p.ViewportEnrichLimit < 0 {
		return errors.New("enrich limits must not be negative")
	}
	if p.PrimaryCooldown <= 0 || p.FallbackCooldown <= 0 {
		return errors.New("cooldowns must be positive")
	}
	if p.StaleTTL <= 0 {
		return errors.New("stale_ttl must be positive")
	}
	if p.ViewportFallbackDefault < 1 || p.ViewportFallbackMax < 1 {
		return errors.New("viewport fallback sizes must be at least 1")
	}
	if p.DefaultQuery == "" || p.QueryKeyword == "" {
		return errors.New("default_query and query_keyword must be set")
	}
	return nil
}

func (p Policy) targetLocals(limit int) int {
	return max(2*p.MinLocal, limit)
}

func (p Policy) budgets(viewport bool) (calls, enrich int) {
	if viewport {
		return p.ViewportCallBudget, p.ViewportEnrichLimit
	}
	return p.CallBudget, p.EnrichLimit
}

func (p Policy) offsets(page int) [2]int {
	first := max(0, (page-1)*p.PageSize)
	return [2]int{first, first + p.PageSize}
}

func (p Policy) viewportFallbackSize(limit int) int {
	n := limit
	if n <= 0 {
		n = p.ViewportFallbackDefault
	}
	return min(n, p.ViewportFallbackMax)
}
