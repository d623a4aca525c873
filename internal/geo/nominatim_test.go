// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestNominatim(t *testing.T, handler http.HandlerFunc) *NominatimClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNominatimClient(NominatimConfig{
		BaseURL:           srv.URL,
		UserAgent:         "eventscope-test",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
	})
}

func TestNominatimReverse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    Locality
		wantErr error
	}{
		{
			name: "city and state",
			body: `{"address":{"city":"Austin","state":"Texas","country":"United States"}}`,
			want: Locality{City: "Austin", State: "Texas", Country: "United States"},
		},
		{
			name: "town falls back for city",
			body: `{"address":{"town":"Marfa","state":"Texas","country":"United States"}}`,
			want: Locality{City: "Marfa", State: "Texas", Country: "United States"},
		},
		{
			name: "hamlet and region",
			body: `{"address":{"hamlet":"Skaill","region":"Orkney","country":"United Kingdom"}}`,
			want: Locality{City: "Skaill", State: "Orkney", Country: "United Kingdom"},
		},
		{
			name:    "unable to geocode",
			body:    `{"error":"Unable to geocode"}`,
			wantErr: ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var gotPath, gotUA, gotZoom string
			client := newTestNominatim(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotUA = r.Header.Get("User-Agent")
				gotZoom = r.URL.Query().Get("zoom")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			loc, err := client.Reverse(context.Background(), 30.2672, -97.7431)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Reverse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reverse() error = %v", err)
			}
			if *loc != tt.want {
				t.Errorf("Reverse() = %+v, want %+v", *loc, tt.want)
			}
			if gotPath != "/reverse" || gotUA != "eventscope-test" || gotZoom != "10" {
				t.Errorf("unexpected request path=%q ua=%q zoom=%q", gotPath, gotUA, gotZoom)
			}
		})
	}
}

func TestNominatimForward(t *testing.T) {
	t.Parallel()

	client := newTestNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("q") == "nowhere" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431","display_name":"Austin, Texas"}]`))
	})

	p, err := client.Forward(context.Background(), "Moody Center, Austin, TX")
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if p.Lat != 30.2672 || p.Lon != -97.7431 {
		t.Errorf("Forward() = %+v", p)
	}

	if _, err := client.Forward(context.Background(), "nowhere"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Forward(nowhere) error = %v, want ErrNoMatch", err)
	}
}

func TestNominatimStatusErrors(t *testing.T) {
	t.Parallel()

	limited := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if _, err := limited.Reverse(context.Background(), 1, 1); !errors.Is(err, ErrGeocoderRateLimited) {
		t.Errorf("expected ErrGeocoderRateLimited, got %v", err)
	}

	broken := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := broken.Forward(context.Background(), "x"); err == nil {
		t.Error("expected error on 502")
	}
}

func TestNominatimContextCancelled(t *testing.T) {
	t.Parallel()

	client := newTestNominatim(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Forward(ctx, "anything"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNominatimThrottleWaitBoundedByTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"30.28","lon":"-97.73"}]`))
	}))
	t.Cleanup(srv.Close)

	timeout := 300 * time.Millisecond
	client := NewNominatimClient(NominatimConfig{
		BaseURL:           srv.URL,
		Timeout:           timeout,
		RequestsPerSecond: 1,
	})

	const calls = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		slowest   time.Duration
	)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			_, err := client.Forward(context.Background(), "Moody Center")
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			}
			if elapsed > slowest {
				slowest = elapsed
			}
		}()
	}
	wg.Wait()

	// One token is available immediately; the rest would wait ~1s each
	if successes != 1 {
		t.Errorf("successes = %d, want 1", successes)
	}
	if slowest > 2*timeout {
		t.Errorf("slowest call took %v, want at most %v", slowest, 2*timeout)
	}
}
