// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package aggregate

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/presentation"
	"github.com/tomtom215/eventscope/internal/providers"
)

// ResultPrefix namespaces cached aggregation results.
const ResultPrefix = "events"

// Fallback kinds recorded in metrics.
const (
	FallbackRetryNoLocation = "retry_no_location"
	FallbackBroad           = "broad"
	FallbackScraper         = "scraper"
	FallbackStale           = "stale"
	FallbackViewportNearest = "viewport_nearest"
)

// Locator resolves a coordinate to a city and state. It returns nil when
// nothing is known. *geo.CachedGeocoder satisfies it.
type Locator interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) *geo.Locality
}

// Engine answers event queries by fanning out to the primary provider,
// degrading through the fallback provider and stale results, and ranking
// what it finds around the user. It is safe for concurrent use; the only
// shared state lives in the cache.
type Engine struct {
	primary  providers.Provider
	fallback providers.Provider
	locator  Locator
	cache    cache.Cacher
	policy   Policy
}

// NewEngine wires an engine. fallback and locator may be nil.
func NewEngine(primary, fallback providers.Provider, locator Locator, c cache.Cacher, policy Policy) *Engine {
	return &Engine{
		primary:  primary,
		fallback: fallback,
		locator:  locator,
		cache:    c,
		policy:   policy,
	}
}

// Policy returns the thresholds the engine runs with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// CoolingDown reports whether provider is inside its rate-limit cooldown.
func (e *Engine) CoolingDown(provider string) bool {
	_, ok := e.cache.Get(cache.CooldownKey(provider))
	return ok
}

// ResultKey is the cache key of the result for q.
func ResultKey(q models.Query) string {
	return cache.GenerateKey(ResultPrefix, q.Normalized())
}

// Aggregate returns the ranked events for q. It never fails: provider
// errors degrade the result and surface only as flags on it. Results are
// cached for Policy.ResultTTL and must not be modified by the caller.
func (e *Engine) Aggregate(ctx context.Context, q models.Query) *models.Result {
	q = q.Normalized()
	key := ResultKey(q)

	if v, ok := e.cache.Get(key); ok {
		if r, ok := v.(*models.Result); ok {
			metrics.RecordAggregationCache(true)
			return r
		}
	}
	metrics.RecordAggregationCache(false)

	// The run outlives the request that started it; single-flight waiters
	// share its result. Outbound calls keep their own timeouts.
	runCtx := context.WithoutCancel(ctx)
	v := e.cache.GetOrSetDynamic(key, func() (interface{}, time.Duration) {
		return e.run(runCtx, q), e.policy.ResultTTL
	})
	if r, ok := v.(*models.Result); ok {
		return r
	}
	return presentation.BuildResult(nil, 0, presentation.Flags{})
}

// run is one uncached aggregation. Concurrent runs share nothing but the cache.
func (e *Engine) run(ctx context.Context, q models.Query) *models.Result {
	start := time.Now()
	log := logging.Ctx(ctx)

	base := e.policy.BaseQuery(q.Text)
	var loc *geo.Locality
	if q.User != nil && e.locator != nil {
		loc = e.locator.ReverseGeocode(ctx, q.User.Lat, q.User.Lon)
	}

	r := &runState{
		engine:   e,
		query:    q,
		variants: Variants(base, loc),
		hint:     LocationHint(loc),
		offsets:  e.policy.offsets(q.Page),
		seen:     make(map[string]struct{}),
	}
	r.callBudget, r.enrichLimit = e.policy.budgets(q.HasViewport())
	r.primaryBlocked = e.primary == nil
	if e.primary != nil && e.CoolingDown(e.primary.Name()) {
		r.primaryBlocked = true
		r.exhausted = true
		log.Info().Str("provider", e.primary.Name()).Msg("Primary provider cooling down, skipping it for this request")
	}

	r.fanOut(ctx)

	if len(r.events) == 0 && r.hint != "" && !r.primaryBlocked {
		metrics.RecordFallback(FallbackRetryNoLocation)
		r.retryWithoutLocation(ctx)
	}

	if len(r.events) == 0 && !r.primaryBlocked {
		metrics.RecordFallback(FallbackBroad)
		r.merge(r.callPrimary(ctx, providers.FetchRequest{
			Query:       base,
			Offset:      r.offsets[0],
			Chips:       q.Chips,
			EnrichLimit: r.enrichLimit,
		}))
	}

	var flags presentation.Flags
	if len(r.events) == 0 {
		scraped := e.scrape(ctx, FallbackQuery(base, loc))
		if len(scraped) > 0 {
			metrics.RecordFallback(FallbackScraper)
			flags.ScraperFallback = true
			flags.ScraperLimited = len(scraped) < e.policy.LimitedThreshold
			r.merge(scraped)
		}
	}
	flags.SerpapiExhausted = r.exhausted

	ranked := r.events
	if q.Viewport != nil {
		var nearest bool
		ranked, nearest = FilterViewport(ranked, *q.Viewport, e.policy.viewportFallbackSize(q.Limit))
		if nearest {
			metrics.RecordFallback(FallbackViewportNearest)
		}
	}
	ranked = e.policy.Rank(ranked, q.User != nil)

	result := presentation.BuildResult(ranked, q.Limit, flags)
	metrics.RecordAggregation(time.Since(start), result.Total)
	log.Info().
		Str("query", base).
		Str("location", r.hint).
		Int("calls", r.calls).
		Int("candidates", len(r.events)).
		Int("returned", result.Total).
		Bool("serpapi_exhausted", flags.SerpapiExhausted).
		Bool("scraper_fallback", flags.ScraperFallback).
		Dur("duration", time.Since(start)).
		Msg("Aggregated events")
	return result
}

// runState is the scratch space of one aggregation run.
type runState struct {
	engine   *Engine
	query    models.Query
	variants []string
	hint     string
	offsets  [2]int

	callBudget  int
	enrichLimit int
	calls       int

	// primaryBlocked stops further primary calls for this run; exhausted
	// is the subset caused by rate limiting and is reported to the client.
	primaryBlocked bool
	exhausted      bool

	events []models.RankedEvent
	seen   map[string]struct{}
	locals int
}

// fanOut walks variants and offsets until enough local events are found,
// the call budget is spent or the primary becomes unavailable.
func (r *runState) fanOut(ctx context.Context) {
	target := r.engine.policy.targetLocals(r.query.Limit)
	for _, variant := range r.variants {
		for _, offset := range r.offsets {
			if r.primaryBlocked || r.calls >= r.callBudget {
				return
			}
			r.merge(r.callPrimary(ctx, providers.FetchRequest{
				Query:       variant,
				Offset:      offset,
				Chips:       r.query.Chips,
				Location:    r.hint,
				NoCache:     true,
				EnrichLimit: r.enrichLimit,
			}))
			if r.query.User != nil && r.locals >= target {
				return
			}
		}
	}
}

// retryWithoutLocation repeats the variant loop without the location hint
// and stops at the first batch that yields anything.
func (r *runState) retryWithoutLocation(ctx context.Context) {
	calls := 0
	for _, variant := range r.variants {
		for _, offset := range r.offsets {
			if r.primaryBlocked || calls >= r.callBudget {
				return
			}
			calls++
			r.merge(r.callPrimary(ctx, providers.FetchRequest{
				Query:       variant,
				Offset:      offset,
				Chips:       r.query.Chips,
				EnrichLimit: r.enrichLimit,
			}))
			if len(r.events) > 0 {
				return
			}
		}
	}
}

// callPrimary performs one primary call and applies its outcome to the run.
func (r *runState) callPrimary(ctx context.Context, req providers.FetchRequest) []models.Event {
	e := r.engine
	events, err := e.primary.Fetch(ctx, req)
	log := logging.Ctx(ctx)

	switch providers.Classify(err) {
	case providers.OutcomeOK:
		r.calls++
		return events
	case providers.OutcomeRateLimited:
		r.primaryBlocked = true
		r.exhausted = true
		e.startCooldown(e.primary.Name(), e.policy.PrimaryCooldown)
		log.Warn().Str("provider", e.primary.Name()).Dur("cooldown", e.policy.PrimaryCooldown).
			Msg("Primary provider quota exhausted, switching to fallback")
	case providers.OutcomeNotConfigured:
		r.primaryBlocked = true
		log.Warn().Str("provider", e.primary.Name()).Msg("Primary provider not configured")
	default:
		r.calls++
		log.Warn().Err(err).Str("provider", e.primary.Name()).Str("query", req.Query).Int("offset", req.Offset).
			Msg("Primary provider call failed")
	}
	return nil
}

// merge adds unseen events, annotating distance and counting locals.
func (r *runState) merge(events []models.Event) {
	radius := r.engine.policy.LocalRadiusKm
	for _, ev := range events {
		if _, dup := r.seen[ev.ID]; dup {
			continue
		}
		r.seen[ev.ID] = struct{}{}
		ranked := models.RankedEvent{Event: ev, DistanceKm: distanceFrom(r.query.User, &ev)}
		if ranked.DistanceKm != nil && *ranked.DistanceKm <= radius {
			r.locals++
		}
		r.events = append(r.events, ranked)
	}
}

func (e *Engine) startCooldown(provider string, d time.Duration) {
	e.cache.SetWithTTL(cache.CooldownKey(provider), true, d)
	metrics.RecordCooldown(provider)
}

// scrape asks the fallback provider for query. While the fallback cools
// down, or when it fails, the last non-empty answer for the same query is
// returned if it is still fresh.
func (e *Engine) scrape(ctx context.Context, query string) []models.Event {
	if e.fallback == nil {
		return nil
	}
	name := e.fallback.Name()
	staleKey := cache.StaleKey(name, query)
	log := logging.Ctx(ctx)

	if e.CoolingDown(name) {
		log.Info().Str("provider", name).Msg("Fallback provider cooling down")
		return e.stale(staleKey)
	}

	events, err := e.fallback.Fetch(ctx, providers.FetchRequest{Query: query})
	switch providers.Classify(err) {
	case providers.OutcomeOK:
		if len(events) > 0 {
			e.cache.SetWithTTL(staleKey, events, e.policy.StaleTTL)
		}
		return events
	case providers.OutcomeNotConfigured:
		log.Warn().Str("provider", name).Msg("Fallback provider not configured")
		return nil
	default:
		if !errors.Is(err, context.Canceled) {
			e.startCooldown(name, e.policy.FallbackCooldown)
		}
		log.Warn().Err(err).Str("provider", name).Str("query", query).Msg("Fallback provider failed")
		return e.stale(staleKey)
	}
}

func (e *Engine) stale(key string) []models.Event {
	v, ok := e.cache.Get(key)
	if !ok {
		return nil
	}
	events, _ := v.([]models.Event)
	if len(events) > 0 {
		metrics.RecordFallback(FallbackStale)
	}
	return events
}
