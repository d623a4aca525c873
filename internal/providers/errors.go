// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package providers

import (
	"context"
	"errors"
)

// Sentinel errors returned (wrapped) by every provider. Use errors.Is or Classify.
var (
	// ErrRateLimited means the upstream answered HTTP 429 or otherwise signalled quota exhaustion.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrTransient covers network failures, timeouts, non-2xx answers and open circuits.
	ErrTransient = errors.New("provider temporarily unavailable")

	// ErrNotConfigured means a required credential is missing.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrMalformedResponse means the whole response body could not be decoded.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrUnauthorized means the upstream rejected our credentials (HTTP 401).
	ErrUnauthorized = errors.New("provider rejected credentials")
)

// Outcome is the classified result of one provider call, used for metrics
// labels and engine decisions.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeRateLimited   Outcome = "rate_limited"
	OutcomeTransient     Outcome = "transient"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeMalformed     Outcome = "malformed"
)

// Classify maps an error returned by a provider onto an Outcome.
// Unknown errors are treated as transient.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeMalformed
	default:
		return OutcomeTransient
	}
}

// countsAsFailure reports whether err should move a circuit breaker towards open.
// Quota exhaustion, missing credentials and calls abandoned by the caller say
// nothing about upstream health.
func countsAsFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch Classify(err) {
	case OutcomeOK, OutcomeRateLimited, OutcomeNotConfigured:
		return false
	default:
		return true
	}
}
