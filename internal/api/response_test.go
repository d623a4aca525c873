// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/providers"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, w.Body.String())
	}
	return response
}

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(w, r).Success(map[string]string{"message": "hello"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	response := decodeEnvelope(t, w)
	if !response.Success {
		t.Error("Expected Success to be true")
	}
	if response.Error != nil {
		t.Error("Expected Error to be nil")
	}
	if response.Meta == nil || response.Meta.Timestamp.IsZero() {
		t.Error("Expected Meta with a timestamp")
	}
}

func TestResponseWriter_CarriesRequestID(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-123"))

	NewResponseWriter(w, r).BadRequest("nope")

	response := decodeEnvelope(t, w)
	if response.Meta.RequestID != "req-123" {
		t.Errorf("Meta.RequestID = %q", response.Meta.RequestID)
	}
	if response.Error == nil || response.Error.RequestID != "req-123" {
		t.Errorf("Error = %+v", response.Error)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("x") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("x") }, http.StatusNotFound, ErrCodeNotFound},
		{"too many", func(rw *ResponseWriter) { rw.TooManyRequests("x") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("x") }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("x") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("x", map[string]string{"field": "lat"}) }, http.StatusBadRequest, ErrCodeValidationFailed},
		{"external", func(rw *ResponseWriter) { rw.ExternalServiceError("weather", errors.New("boom")) }, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			tt.write(NewResponseWriter(w, r))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			response := decodeEnvelope(t, w)
			if response.Success {
				t.Error("Expected Success to be false")
			}
			if response.Error == nil || response.Error.Code != tt.wantCode {
				t.Errorf("Error = %+v, want code %s", response.Error, tt.wantCode)
			}
		})
	}
}

func TestResponseWriter_Raw(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(w, r).Raw(http.StatusOK, map[string]int{"total": 0})

	if got := w.Body.String(); got != "{\"total\":0}\n" {
		t.Errorf("body = %q", got)
	}
}

func TestRespondProviderError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  bool
	}{
		{"not configured", providers.ErrNotConfigured, http.StatusServiceUnavailable, false},
		{"rate limited", fmt.Errorf("twitch: %w", providers.ErrRateLimited), http.StatusTooManyRequests, true},
		{"transient", errors.New("connection reset"), http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			respondProviderError(NewResponseWriter(w, r), "twitch", tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Retry-After") != ""; got != tt.wantRetry {
				t.Errorf("Retry-After present = %v, want %v", got, tt.wantRetry)
			}
		})
	}
}
