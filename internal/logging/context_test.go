// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	if len(id1) != 36 { // UUID format
		t.Errorf("expected 36-character request ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique request IDs")
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("expected empty correlation ID, got %s", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}

	ctx = ContextWithCorrelationID(ctx, "corr-1")
	ctx = ContextWithRequestID(ctx, "req-1")
	if id := CorrelationIDFromContext(ctx); id != "corr-1" {
		t.Errorf("expected corr-1, got %s", id)
	}
	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("expected req-1, got %s", id)
	}

	fresh := ContextWithNewCorrelationID(context.Background())
	if len(CorrelationIDFromContext(fresh)) != 8 {
		t.Error("expected generated correlation ID")
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(zerolog.New(&buf))
	defer SetLogger(original)

	ctx := context.Background()
	ctx = ContextWithCorrelationID(ctx, "corr-123")
	ctx = ContextWithRequestID(ctx, "req-456")

	Ctx(ctx).Info().Msg("context test")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"corr-123"`) {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-456"`) {
		t.Errorf("expected request_id in output: %s", output)
	}
}

func TestCtxWith(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(zerolog.New(&buf))
	defer SetLogger(original)

	ctx := ContextWithCorrelationID(context.Background(), "corr-789")

	logger := CtxWith(ctx).Str("provider", "serpapi").Logger()
	logger.Info().Msg("ctxwith test")

	output := buf.String()
	if !strings.Contains(output, "corr-789") {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"provider":"serpapi"`) {
		t.Errorf("expected provider field in output: %s", output)
	}
	if strings.Contains(output, "request_id") {
		t.Errorf("expected no request_id when absent: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(zerolog.New(&buf))
	defer SetLogger(original)

	l := WithComponent("geocoder")
	l.Info().Msg("lookup")

	if !strings.Contains(buf.String(), `"component":"geocoder"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
