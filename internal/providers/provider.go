// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package providers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
)

// Provider is an upstream event search source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req FetchRequest) ([]models.Event, error)
}

// FetchRequest is one upstream search call.
type FetchRequest struct {
	Query    string
	Offset   int      // result offset, multiples of 10
	Chips    []string // upstream filter chips
	Location string   // free-text location hint, e.g. "Austin, Texas"
	NoCache  bool     // ask the upstream to bypass its own cache

	// EnrichLimit caps how many events get coordinate enrichment
	EnrichLimit int
}

// ChipsParam joins chips into the comma-separated upstream form.
func (r FetchRequest) ChipsParam() string {
	return strings.Join(r.Chips, ",")
}

// Instrument wraps p so every Fetch records provider metrics and a debug log line.
func Instrument(p Provider) Provider {
	if _, ok := p.(*instrumented); ok {
		return p
	}
	return &instrumented{next: p}
}

type instrumented struct {
	next Provider
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Fetch(ctx context.Context, req FetchRequest) ([]models.Event, error) {
	start := time.Now()
	events, err := i.next.Fetch(ctx, req)
	outcome := Classify(err)
	metrics.RecordProviderCall(i.next.Name(), string(outcome), time.Since(start), len(events))

	logging.Ctx(ctx).Debug().
		Str("provider", i.next.Name()).
		Str("query", req.Query).
		Int("offset", req.Offset).
		Str("location", req.Location).
		Str("outcome", string(outcome)).
		Int("events", len(events)).
		Dur("duration", time.Since(start)).
		Msg("Provider fetch")
	return events, err
}

// Registry holds the configured providers and their circuit breakers so the
// API can report their health.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	breakers  map[string]*Breaker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		breakers:  make(map[string]*Breaker),
	}
}

// Register adds or replaces a provider under its name.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddBreaker tracks a breaker for status reporting. Nil is ignored.
func (r *Registry) AddBreaker(b *Breaker) {
	if b == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakers[b.Name()] = b
}

// BreakerStates returns breaker name to state.
func (r *Registry) BreakerStates() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.breakers))
	for name, b := range r.breakers {
		out[name] = b.State()
	}
	return out
}
