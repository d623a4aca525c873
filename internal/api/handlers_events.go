// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"

	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/presentation"
)

// Events handles nearby event search.
//
// Upstream failures never fail the request: a rate-limited or unconfigured
// primary source is reported through the serpapi_exhausted and
// scraper_fallback flags, and unreachable sources just contribute nothing.
//
// @Summary Search nearby events
// @Description Aggregates events from the search provider (with scraping fallback), geocodes and ranks them by distance to the user, and optionally restricts them to a map viewport. The viewport needs all four bounds.
// @Tags Events
// @Produce json
// @Param q query string false "Free-text query, e.g. 'concerts in Austin'" maxlength(200)
// @Param page query int false "Result page (1-50)" default(1) minimum(1) maximum(50)
// @Param limit query int false "Maximum number of events (0 uses the default)" default(20) minimum(0) maximum(100)
// @Param htichips query string false "Comma-separated filter chips" example("date:today,event_type:Virtual-Event")
// @Param lat query number false "User latitude" minimum(-90) maximum(90)
// @Param lon query number false "User longitude" minimum(-180) maximum(180)
// @Param min_lat query number false "Viewport south bound"
// @Param max_lat query number false "Viewport north bound"
// @Param min_lon query number false "Viewport west bound"
// @Param max_lon query number false "Viewport east bound"
// @Success 200 {object} presentation.EventsResponse "Ranked events"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 503 {object} APIResponse "Aggregation engine not available"
// @Router /events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseEventsRequest(r, h.cfg.DefaultLimit)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if h.events == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return
	}

	if req.Limit == 0 {
		req.Limit = h.cfg.DefaultLimit
	}
	req.Limit = min(req.Limit, h.cfg.MaxLimit)

	q := req.ToQuery()
	resp := presentation.NewEventsResponse(h.events.Aggregate(r.Context(), q))

	logging.Ctx(r.Context()).Debug().
		Str("q", sanitizeLogValue(q.Text)).
		Int("page", q.Page).
		Int("limit", q.Limit).
		Bool("user_location", q.HasUserLocation()).
		Bool("viewport", q.HasViewport()).
		Int("total", resp.Total).
		Msg("Events aggregated")

	rw.Raw(http.StatusOK, resp)
}
