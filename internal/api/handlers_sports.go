// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers/sportsdb"
)

const sportsService = "sportsdb"

// SportsCatalogue is the body of GET /sports.
type SportsCatalogue struct {
	// Aliases are the sport names accepted by /sports/{sport}/events.
	Aliases []string         `json:"aliases"`
	Sports  []sportsdb.Sport `json:"sports"`
}

// SportFixtures is the body of GET /sports/{sport}/fixtures.
type SportFixtures struct {
	Sport  string         `json:"sport"`
	Events []models.Event `json:"events"`
}

// SportsCatalogue lists the supported league aliases and the provider's
// sport catalogue. The aliases are always returned; a failing catalogue
// lookup only leaves sports empty.
//
// @Summary List sports
// @Description Returns the league aliases understood by the sports endpoints, plus the provider's full sport catalogue when it is reachable.
// @Tags Sports
// @Produce json
// @Success 200 {object} APIResponse{data=SportsCatalogue}
// @Failure 503 {object} APIResponse "Sports source not available"
// @Router /sports [get]
func (h *Handler) SportsCatalogue(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.sports == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return
	}

	body := SportsCatalogue{Aliases: sportsdb.Aliases(), Sports: []sportsdb.Sport{}}
	sports, err := h.sports.AllSports(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Sport catalogue unavailable")
	} else if sports != nil {
		body.Sports = sports
	}
	rw.Success(body)
}

// SportsTeams searches teams by name.
//
// @Summary Search teams
// @Tags Sports
// @Produce json
// @Param q query string true "Team name" minlength(2) maxlength(100)
// @Success 200 {object} APIResponse{data=[]models.Team}
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 429 {object} APIResponse "Provider quota exhausted"
// @Failure 502 {object} APIResponse "Provider failure"
// @Failure 503 {object} APIResponse "Sports source not available"
// @Router /sports/teams [get]
func (h *Handler) SportsTeams(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := TeamsRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if h.sports == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return
	}

	teams, err := h.sports.SearchTeams(r.Context(), req.Query)
	if err != nil {
		respondProviderError(rw, sportsService, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	rw.Success(teams)
}

// SportEvents returns upcoming and recent fixtures for a league alias such
// as nba or epl. Unknown aliases produce an empty snapshot.
//
// @Summary League fixtures and results
// @Tags Sports
// @Produce json
// @Param sport path string true "League alias" example(nba)
// @Success 200 {object} APIResponse{data=models.LeagueSnapshot}
// @Failure 400 {object} APIResponse "Invalid sport"
// @Failure 502 {object} APIResponse "Provider failure"
// @Failure 503 {object} APIResponse "Sports source not available"
// @Router /sports/{sport}/events [get]
func (h *Handler) SportEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, ok := h.sportRequest(rw, r)
	if !ok {
		return
	}

	snap, err := h.sports.Snapshot(r.Context(), req.Sport)
	if err != nil {
		respondProviderError(rw, sportsService, err)
		return
	}
	rw.Success(snap)
}

// SportFixtures returns upcoming fixtures of a league as generic events, the
// same shape /events produces.
//
// @Summary Upcoming league fixtures as events
// @Tags Sports
// @Produce json
// @Param sport path string true "League alias" example(nfl)
// @Success 200 {object} APIResponse{data=SportFixtures}
// @Failure 400 {object} APIResponse "Invalid sport"
// @Failure 502 {object} APIResponse "Provider failure"
// @Failure 503 {object} APIResponse "Sports source not available"
// @Router /sports/{sport}/fixtures [get]
func (h *Handler) SportFixtures(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, ok := h.sportRequest(rw, r)
	if !ok {
		return
	}

	events, err := h.sports.LeagueEvents(r.Context(), req.Sport)
	if err != nil {
		respondProviderError(rw, sportsService, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	rw.Success(SportFixtures{Sport: req.Sport, Events: events})
}

// sportRequest reads and validates the {sport} path parameter. It writes the
// error response itself and reports false when the handler should stop.
func (h *Handler) sportRequest(rw *ResponseWriter, r *http.Request) (SportRequest, bool) {
	req := SportRequest{Sport: strings.ToLower(strings.TrimSpace(chi.URLParam(r, "sport")))}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return req, false
	}
	if h.sports == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return req, false
	}
	return req, true
}
