// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/eventscope/internal/providers"
)

var (
	// ErrInvalidParam wraps query parameters that could not be parsed.
	ErrInvalidParam = errors.New("invalid query parameter")

	// ErrSourceUnavailable means the handler was built without the source
	// its endpoint needs.
	ErrSourceUnavailable = errors.New("data source not wired")
)

// respondProviderError maps a classified provider error onto an HTTP answer.
// Missing credentials and exhausted quota are expected states, so they are
// reported as 503 and 429 without an error log; anything else is a 502.
func respondProviderError(rw *ResponseWriter, service string, err error) {
	switch providers.Classify(err) {
	case providers.OutcomeNotConfigured:
		rw.ServiceUnavailable(service + " is not configured")
	case providers.OutcomeRateLimited:
		rw.w.Header().Set("Retry-After", "60")
		rw.Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, service+" quota exhausted, try again later")
	default:
		rw.ExternalServiceError(service, err)
	}
}
