// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/eventscope/internal/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m == nil || m.config == nil {
		t.Fatal("NewChiMiddleware returned no config")
	}
	// Default should be empty (secure by default - requires explicit configuration)
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want 86400", m.config.CORSMaxAge)
	}
	if m.config.RateLimitRequests != 100 || m.config.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v", m.config.RateLimitRequests, m.config.RateLimitWindow)
	}
}

func TestChiMiddleware_CORS_DisallowedOrigin(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://allowed.com"},
		CORSAllowedMethods: []string{"GET"},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://notallowed.com")
	w := httptest.NewRecorder()
	m.CORS()(okHandler()).ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}

func TestChiMiddleware_RateLimit_Disabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitDisabled: true,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestChiMiddleware_RateLimit_Enabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 3,
		RateLimitWindow:   time.Minute, // Use a longer window for test stability
	})
	handler := m.RateLimit()(okHandler())
	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("api"))

	successCount := 0
	var limited *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			limited = w
		}
	}

	if successCount != 3 {
		t.Errorf("successCount = %d, want 3", successCount)
	}
	if limited == nil {
		t.Fatal("expected a rate limited response")
	}
	if code := errorCode(t, limited); code != ErrCodeTooManyRequests {
		t.Errorf("code = %s, want %s", code, ErrCodeTooManyRequests)
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("api")) - before; got != 2 {
		t.Errorf("rate limit hits delta = %v, want 2", got)
	}
}

func TestChiMiddleware_RateLimit_DifferentIPs(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimitCustom(RateLimitConfig{Name: "test", Requests: 1, Window: time.Minute})(okHandler())

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", ip, w.Code)
		}
	}
}

func TestChiMiddleware_RateLimitCustom_ZeroRequestsIsNoop(t *testing.T) {
	m := NewChiMiddleware(nil)
	handler := m.RateLimitCustom(RateLimitConfig{Name: "none"})(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	}
}

func TestRequestLogging_PassesThrough(t *testing.T) {
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/brew", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.Code)
	}
	if w.Body.String() != "short and stout" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestStatusResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = w.Write([]byte("x"))
	w.WriteHeader(http.StatusInternalServerError)

	if w.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want 200 after an implicit header", w.statusCode)
	}
	if w.Unwrap() != rec {
		t.Error("Unwrap should return the wrapped writer")
	}
}
