// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeOK},
		{"rate limited", fmt.Errorf("%w: 429", ErrRateLimited), OutcomeRateLimited},
		{"not configured", ErrNotConfigured, OutcomeNotConfigured},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedResponse), OutcomeMalformed},
		{"transient", ErrTransient, OutcomeTransient},
		{"unauthorized", ErrUnauthorized, OutcomeTransient},
		{"deadline", context.DeadlineExceeded, OutcomeTransient},
		{"unknown", errors.New("boom"), OutcomeTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPClientGetJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "jazz" {
			t.Errorf("q = %q, want jazz", got)
		}
		if got := r.URL.Query().Get("engine"); got != "google_events" {
			t.Errorf("engine = %q, want base query preserved", got)
		}
		if got := r.Header.Get("User-Agent"); got != "eventscope-test" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("Client-ID"); got != "abc" {
			t.Errorf("Client-ID = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": 42}`))
	}))
	defer server.Close()

	c := NewHTTPClient(HTTPConfig{Provider: "test", Timeout: 5 * time.Second, UserAgent: "eventscope-test"})

	var out struct {
		Value int `json:"value"`
	}
	headers := http.Header{}
	headers.Set("Client-ID", "abc")
	err := c.GetJSON(context.Background(), server.URL+"/search?engine=google_events", url.Values{"q": {"jazz"}}, headers, &out)
	if err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Value != 42 {
		t.Errorf("value = %d, want 42", out.Value)
	}
}

func TestHTTPClientStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, "slow down", ErrRateLimited},
		{"unauthorized", http.StatusUnauthorized, "bad token", ErrUnauthorized},
		{"server error", http.StatusBadGateway, "upstream", ErrTransient},
		{"not found", http.StatusNotFound, "missing", ErrTransient},
		{"malformed", http.StatusOK, "{not json", ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewHTTPClient(HTTPConfig{Provider: "test"})
			var out map[string]interface{}
			err := c.GetJSON(context.Background(), server.URL, nil, nil, &out)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHTTPClientRedactsNetworkErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	c := NewHTTPClient(HTTPConfig{Provider: "test", Timeout: time.Second})
	_, err := c.Get(context.Background(), addr, url.Values{"api_key": {"supersecretvalue"}}, nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("error = %v, want ErrTransient", err)
	}
	if strings.Contains(err.Error(), "supersecretvalue") {
		t.Errorf("api key leaked into error: %v", err)
	}
}

func TestHTTPClientKeepsContextError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient(HTTPConfig{Provider: "test", Timeout: time.Second})
	_, err := c.Get(ctx, server.URL, nil, nil)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("error = %v, want ErrTransient", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}

func TestHTTPClientThrottleWaitBoundedByTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewHTTPClient(HTTPConfig{Provider: "test", Timeout: 200 * time.Millisecond, RequestsPerSecond: 1})
	if _, err := c.Get(context.Background(), server.URL, nil, nil); err != nil {
		t.Fatalf("first Get() error = %v", err)
	}

	start := time.Now()
	_, err := c.Get(context.Background(), server.URL, nil, nil)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("throttled Get() error = %v, want ErrTransient", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("throttled Get() took %v, want it bounded by the timeout", elapsed)
	}
}

func TestBreakerIgnoresCancelledCalls(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-cancelled", BreakerSettings{MinRequests: 2, FailureRatio: 0.5, Timeout: time.Hour})
	for i := 0; i < 10; i++ {
		err := b.Execute(func() error {
			return fmt.Errorf("%w: request abandoned: %w", ErrTransient, context.Canceled)
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled passed through", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerTripsOnTransientFailures(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-trip", BreakerSettings{MinRequests: 2, FailureRatio: 0.5, Timeout: time.Hour})
	calls := 0
	failing := func() error {
		calls++
		return ErrTransient
	}

	for i := 0; i < 2; i++ {
		if err := b.Execute(failing); !errors.Is(err, ErrTransient) {
			t.Fatalf("call %d error = %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	err := b.Execute(failing)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("open circuit error = %v, want ErrTransient", err)
	}
	if calls != 2 {
		t.Errorf("open circuit should not call through, calls = %d", calls)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); got != 2 {
		t.Errorf("breaker state metric = %v, want 2", got)
	}
}

func TestBreakerIgnoresRateLimits(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-ratelimit", BreakerSettings{MinRequests: 2, FailureRatio: 0.5, Timeout: time.Hour})
	for i := 0; i < 10; i++ {
		err := b.Execute(func() error { return fmt.Errorf("%w: quota", ErrRateLimited) })
		if !errors.Is(err, ErrRateLimited) {
			t.Fatalf("error = %v, want ErrRateLimited passed through", err)
		}
		_ = b.Execute(func() error { return ErrNotConfigured })
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestDoReturnsTypedResult(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-do", BreakerSettings{})
	got, err := Do(b, func() ([]string, error) { return []string{"a"}, nil })
	if err != nil || len(got) != 1 || got[0] != "a" {
		t.Errorf("Do() = %v, %v", got, err)
	}
}

type stubProvider struct{ name string }

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Fetch(context.Context, FetchRequest) ([]models.Event, error) {
	return []models.Event{{ID: "1"}}, nil
}

func TestInstrumentRecordsOutcome(t *testing.T) {
	t.Parallel()

	p := Instrument(stubProvider{name: "instrumented-test"})
	if Instrument(p) != p {
		t.Error("Instrument should not double wrap")
	}
	before := testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues("instrumented-test", "ok"))
	if _, err := p.Fetch(context.Background(), FetchRequest{Query: "events"}); err != nil {
		t.Fatal(err)
	}
	after := testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues("instrumented-test", "ok"))
	if after-before != 1 {
		t.Errorf("provider request counter delta = %v, want 1", after-before)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(stubProvider{name: "b"})
	r.Register(stubProvider{name: "a"})
	r.AddBreaker(nil)
	r.AddBreaker(NewBreaker("registry-test", BreakerSettings{}))

	if names := r.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
	if states := r.BreakerStates(); states["registry-test"] != "closed" {
		t.Errorf("BreakerStates() = %v", states)
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	if got := JoinURL("https://example.com/api/", "/v1/", "key", "/a.php"); got != "https://example.com/api/v1/key/a.php" {
		t.Errorf("JoinURL() = %q", got)
	}
}
