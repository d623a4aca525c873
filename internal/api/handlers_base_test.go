// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers/sportsdb"
)

type fakeEvents struct {
	mu      sync.Mutex
	calls   int
	last    models.Query
	result  *models.Result
	cooling map[string]bool
}

func (f *fakeEvents) Aggregate(_ context.Context, q models.Query) *models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = q
	if f.result == nil {
		return &models.Result{}
	}
	return f.result
}

func (f *fakeEvents) CoolingDown(provider string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cooling[provider]
}

func (f *fakeEvents) lastQuery() (models.Query, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.calls
}

type fakeSports struct {
	mu        sync.Mutex
	lastSport string
	lastTeam  string
	snap      *models.LeagueSnapshot
	events    []models.Event
	teams     []models.Team
	sports    []sportsdb.Sport
	err       error
	sportsErr error
}

func (f *fakeSports) Snapshot(_ context.Context, sport string) (*models.LeagueSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSport = sport
	if f.err != nil {
		return nil, f.err
	}
	if f.snap == nil {
		return &models.LeagueSnapshot{Sport: sport, Upcoming: []models.SportsEvent{}, Recent: []models.SportsEvent{}}, nil
	}
	return f.snap, nil
}

func (f *fakeSports) LeagueEvents(_ context.Context, sport string) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSport = sport
	return f.events, f.err
}

func (f *fakeSports) SearchTeams(_ context.Context, name string) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTeam = name
	return f.teams, f.err
}

func (f *fakeSports) AllSports(context.Context) ([]sportsdb.Sport, error) {
	return f.sports, f.sportsErr
}

type weatherCall struct {
	lat, lon float64
	hourly   bool
	hours    int
}

type fakeWeather struct {
	mu   sync.Mutex
	last weatherCall
	err  error
}

func (f *fakeWeather) Report(_ context.Context, lat, lon float64, includeHourly bool, hours int) (*models.WeatherReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = weatherCall{lat, lon, includeHourly, hours}
	if f.err != nil {
		return nil, f.err
	}
	return &models.WeatherReport{Latitude: lat, Longitude: lon, Current: models.WeatherCurrent{TemperatureC: 21}}, nil
}

type fakeStreams struct {
	mu        sync.Mutex
	lastGame  string
	lastFirst int
	resp      *models.StreamsResponse
	err       error
}

func (f *fakeStreams) Streams(_ context.Context, gameID string, first int) (*models.StreamsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGame = gameID
	f.lastFirst = first
	return f.resp, f.err
}

type fakeRegistry struct {
	names    []string
	breakers map[string]string
}

func (f *fakeRegistry) Names() []string { return f.names }
func (f *fakeRegistry) BreakerStates() map[string]string { return f.breakers }

// newTestRouter builds the full chi router with rate limiting disabled.
func newTestRouter(cfg HandlerConfig, deps Dependencies) (http.Handler, *Handler) {
	h := NewHandler(cfg, deps)
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return NewRouter(h, mw).SetupChi(), h
}

func doGet(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, w.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := decodeEnvelope(t, w)
	if response.Error == nil {
		t.Fatalf("expected error body, got %s", w.Body.String())
	}
	return response.Error.Code
}
