// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/eventscope/internal/metrics"
)

func newMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/prom-test/sports/{sport}/events", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/prom-test/fail", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	return r
}

func TestPrometheus_LabelsByRoutePattern(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/prom-test/sports/{sport}/events", "200")
	before := testutil.ToFloat64(counter)

	for _, sport := range []string{"nba", "nfl", "epl"} {
		req := httptest.NewRequest(http.MethodGet, "/prom-test/sports/"+sport+"/events", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("requests recorded under route pattern = %v, want 3", got)
	}
}

func TestPrometheus_RecordsStatus(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("POST", "/prom-test/fail", "502")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/prom-test/fail", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("recorded = %v, want 1", got)
	}
}

func TestPrometheus_UnmatchedRoute(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched requests recorded = %v, want 1", got)
	}
}

func TestPrometheus_ActiveRequestsReturnToBaseline(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIActiveRequests)

	var during float64
	handler := Prometheus(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if during < before+1 {
		t.Errorf("active gauge during request = %v, want at least %v", during, before+1)
	}
	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("active gauge after request = %v, want %v", after, before)
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 200", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		_, _ = rec.Write([]byte("ok"))
		if rec.status != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.status)
		}
	})

	t.Run("keeps first status", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		rec.WriteHeader(http.StatusTooManyRequests)
		rec.WriteHeader(http.StatusOK)
		if rec.status != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", rec.status)
		}
	})

	t.Run("unwraps", func(t *testing.T) {
		t.Parallel()
		inner := httptest.NewRecorder()
		if newStatusRecorder(inner).Unwrap() != inner {
			t.Error("Unwrap() did not return the wrapped writer")
		}
	})
}
