// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/eventscope/internal/geo"
	"github.com/tomtom215/eventscope/internal/models"
)

// EventsRequest holds the query parameters of GET /events.
//
// User coordinates come as a lat/lon pair. The viewport is all four of
// min_lat, max_lat, min_lon and max_lon or none of them; its ranges and
// ordering are checked on the assembled geo.BoundingBox.
type EventsRequest struct {
	Query string   `query:"q" validate:"max=200"`
	Page  int      `query:"page" validate:"min=1,max=50"`
	Limit int      `query:"limit" validate:"min=0,max=100"`
	Chips []string `query:"htichips" validate:"omitempty,max=10,dive,chip"`

	Lat *float64 `query:"lat" validate:"required_with=Lon,omitempty,latitude"`
	Lon *float64 `query:"lon" validate:"required_with=Lat,omitempty,longitude"`

	MinLat *float64 `query:"min_lat" validate:"required_with=MaxLat MinLon MaxLon"`
	MaxLat *float64 `query:"max_lat" validate:"required_with=MinLat MinLon MaxLon"`
	MinLon *float64 `query:"min_lon" validate:"required_with=MinLat MaxLat MaxLon"`
	MaxLon *float64 `query:"max_lon" validate:"required_with=MinLat MaxLat MinLon"`

	Viewport *geo.BoundingBox `query:"-" validate:"omitempty"`
}

// parseEventsRequest reads the query string. Only unparsable numbers fail
// here; ranges are left to validation.
func parseEventsRequest(r *http.Request, defaultLimit int) (EventsRequest, error) {
	q := r.URL.Query()
	req := EventsRequest{
		Query: strings.TrimSpace(q.Get("q")),
		Page:  getIntParam(r, "page", 1),
		Limit: getIntParam(r, "limit", defaultLimit),
		Chips: models.SplitChips(q.Get("htichips")),
	}

	var err error
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &req.Lat},
		{"lon", &req.Lon},
		{"min_lat", &req.MinLat},
		{"max_lat", &req.MaxLat},
		{"min_lon", &req.MinLon},
		{"max_lon", &req.MaxLon},
	} {
		if *p.dst, err = getFloatParam(r, p.name); err != nil {
			return req, err
		}
	}

	if req.MinLat != nil && req.MaxLat != nil && req.MinLon != nil && req.MaxLon != nil {
		req.Viewport = &geo.BoundingBox{
			MinLat: *req.MinLat,
			MaxLat: *req.MaxLat,
			MinLon: *req.MinLon,
			MaxLon: *req.MaxLon,
		}
	}
	return req, nil
}

// ToQuery converts a validated request into an engine query.
func (req *EventsRequest) ToQuery() models.Query {
	q := models.Query{
		Text:     req.Query,
		Page:     req.Page,
		Limit:    req.Limit,
		Chips:    req.Chips,
		Viewport: req.Viewport,
	}
	if req.Lat != nil && req.Lon != nil {
		q.User = &geo.Point{Lat: *req.Lat, Lon: *req.Lon}
	}
	return q
}

// WeatherRequest holds the query parameters of GET /weather.
type WeatherRequest struct {
	Lat    *float64 `query:"lat" validate:"required,latitude"`
	Lon    *float64 `query:"lon" validate:"required,longitude"`
	Hourly bool     `query:"hourly"`
	Hours  int      `query:"hours" validate:"min=1,max=168"`
}

func parseWeatherRequest(r *http.Request) (WeatherRequest, error) {
	req := WeatherRequest{
		Hourly: getBoolParam(r, "hourly", false),
		Hours:  getIntParam(r, "hours", 24),
	}
	var err error
	if req.Lat, err = getFloatParam(r, "lat"); err != nil {
		return req, err
	}
	if req.Lon, err = getFloatParam(r, "lon"); err != nil {
		return req, err
	}
	return req, nil
}

// StreamsRequest holds the query parameters of GET /streams.
type StreamsRequest struct {
	GameID string `query:"game_id" validate:"required,numeric,max=20"`
	First  int    `query:"first" validate:"min=0,max=100"`
}

func parseStreamsRequest(r *http.Request) StreamsRequest {
	return StreamsRequest{
		GameID: strings.TrimSpace(r.URL.Query().Get("game_id")),
		First:  getIntParam(r, "first", 20),
	}
}

// TeamsRequest holds the query parameters of GET /sports/teams.
type TeamsRequest struct {
	Query string `query:"q" validate:"required,min=2,max=100"`
}

// SportRequest holds the {sport} path parameter.
type SportRequest struct {
	Sport string `query:"sport" validate:"required,max=32,alphanum"`
}
