// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package providers holds the plumbing shared by every upstream adapter.

Adapters live in subpackages (serpapi, scraper, sportsdb, weather, twitch)
and report failures with the sentinel errors defined here:

	ErrRateLimited       HTTP 429 or quota exhaustion
	ErrTransient         network, timeout, non-2xx, open circuit
	ErrNotConfigured     missing credential
	ErrMalformedResponse undecodable body
	ErrUnauthorized      HTTP 401

Classify maps any returned error onto an Outcome for metrics and for the
aggregation engine's cooldown decisions.

HTTPClient performs GETs with per-call timeouts, optional rate limiting and
an optional Breaker (sony/gobreaker). Rate-limited and not-configured
outcomes never count as breaker failures, so an exhausted quota does not
open the circuit.
*/
package providers
