// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/eventscope/internal/logging"
)

// captureIDs runs RequestID and returns the IDs the handler saw.
func captureIDs(t *testing.T, incoming string) (requestID, correlationID, header string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		requestID = GetRequestID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return requestID, correlationID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	id, correlation, header := captureIDs(t, "")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", id, err)
	}
	if header != id {
		t.Errorf("response header = %q, context = %q", header, id)
	}
	if correlation == "" {
		t.Error("expected a correlation ID in context")
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	t.Parallel()

	id, _, header := captureIDs(t, "edge-7f3a9c")
	if id != "edge-7f3a9c" || header != "edge-7f3a9c" {
		t.Errorf("got context %q header %q, want edge-7f3a9c", id, header)
	}
}

func TestRequestID_RejectsUnsafeUpstreamID(t *testing.T) {
	t.Parallel()

	for _, incoming := range []string{
		strings.Repeat("a", 65),
		"has space",
		"line\nbreak",
	} {
		id, _, _ := captureIDs(t, incoming)
		if id == incoming {
			t.Errorf("unsafe request ID %q was propagated", incoming)
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("replacement ID %q is not a UUID", id)
		}
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _, _ := captureIDs(t, "")
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestGetRequestID_WithoutID(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
