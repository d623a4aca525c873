// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"

	"github.com/tomtom215/eventscope/internal/models"
)

// Weather returns current conditions and an optional hourly forecast.
//
// @Summary Weather at a coordinate
// @Tags Context
// @Produce json
// @Param lat query number true "Latitude" minimum(-90) maximum(90)
// @Param lon query number true "Longitude" minimum(-180) maximum(180)
// @Param hourly query bool false "Include the hourly forecast" default(false)
// @Param hours query int false "Hours of forecast (1-168)" default(24) minimum(1) maximum(168)
// @Success 200 {object} APIResponse{data=models.WeatherReport}
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 502 {object} APIResponse "Provider failure"
// @Failure 503 {object} APIResponse "Weather source not available"
// @Router /weather [get]
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseWeatherRequest(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if h.weather == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return
	}

	report, err := h.weather.Report(r.Context(), *req.Lat, *req.Lon, req.Hourly, req.Hours)
	if err != nil {
		respondProviderError(rw, "weather", err)
		return
	}
	rw.Success(report)
}

// Streams returns live streams for a game category.
//
// @Summary Live streams for a game
// @Tags Context
// @Produce json
// @Param game_id query string true "Streaming platform game/category ID" example(509658)
// @Param first query int false "Maximum streams (1-100)" default(20) minimum(0) maximum(100)
// @Success 200 {object} APIResponse{data=models.StreamsResponse}
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 429 {object} APIResponse "Provider rate limited"
// @Failure 502 {object} APIResponse "Provider failure"
// @Failure 503 {object} APIResponse "Streaming credentials not configured"
// @Router /streams [get]
func (h *Handler) Streams(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := parseStreamsRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if h.streams == nil {
		rw.ServiceUnavailable(ErrSourceUnavailable.Error())
		return
	}
	if req.First == 0 {
		req.First = 20
	}

	resp, err := h.streams.Streams(r.Context(), req.GameID, req.First)
	if err != nil {
		respondProviderError(rw, "twitch", err)
		return
	}
	out := models.StreamsResponse{Data: []models.Stream{}}
	if resp != nil {
		out.Total = resp.Total
		if resp.Data != nil {
			out.Data = resp.Data
		}
	}
	rw.Success(out)
}
