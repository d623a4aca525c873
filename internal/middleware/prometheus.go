// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/eventscope/internal/metrics"
)

// Prometheus records request count, latency and in-flight requests, labelled
// by route pattern rather than raw path.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		// The pattern is only complete once routing has finished.
		metrics.RecordAPIRequest(r.Method, routeLabel(r), strconv.Itoa(rec.status), time.Since(start))
	})
}
