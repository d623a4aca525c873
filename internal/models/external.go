// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package models

import "strings"

// SportsEvent is a fixture or result from a league data provider
type SportsEvent struct {
	ID        string `json:"id"`
	Sport     string `json:"sport,omitempty"`
	League    string `json:"league,omitempty"`
	Season    string `json:"season,omitempty"`
	Round     string `json:"round,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	HomeTeam  string `json:"home_team,omitempty"`
	AwayTeam  string `json:"away_team,omitempty"`
	HomeScore *int   `json:"home_score,omitempty"` // nil until played
	AwayScore *int   `json:"away_score,omitempty"`
	Venue     string `json:"venue,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	TV        string `json:"tv,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Video     string `json:"video,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Title returns "Home vs Away", or whichever side is known.
func (s *SportsEvent) Title() string {
	switch {
	case s.HomeTeam != "" && s.AwayTeam != "":
		return s.HomeTeam + " vs " + s.AwayTeam
	case s.HomeTeam != "":
		return s.HomeTeam
	default:
		return s.AwayTeam
	}
}

// ToEvent converts the fixture into the generic event shape.
func (s *SportsEvent) ToEvent() Event {
	start := s.Timestamp
	if start == "" && s.Date != "" {
		start = strings.TrimSpace(s.Date + "T" + s.Time)
		start = strings.TrimSuffix(start, "T")
	}
	return Event{
		ID:       "sportsdb:" + s.ID,
		Source:   "sportsdb",
		Name:     s.Title(),
		Start:    start,
		Venue:    s.Venue,
		City:     s.City,
		Country:  s.Country,
		Category: s.Sport,
		Image:    s.Thumbnail,
	}
}

// LeagueSnapshot bundles upcoming and recent fixtures for one league.
type LeagueSnapshot struct {
	Sport    string        `json:"sport"`
	LeagueID string        `json:"league_id,omitempty"` // empty when the sport has no mapped league
	Upcoming []SportsEvent `json:"upcoming"`
	Recent   []SportsEvent `json:"recent"`
}

// Team is a club or franchise as listed by the league data provider
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sport   string `json:"sport,omitempty"`
	League  string `json:"league,omitempty"`
	Stadium string `json:"stadium,omitempty"`
	Country string `json:"country,omitempty"`
	Badge   string `json:"badge,omitempty"`
}

// WeatherCurrent holds the latest observation for a coordinate
type WeatherCurrent struct {
	TemperatureC    float64 `json:"temperature_c"`
	TemperatureF    float64 `json:"temperature_f"`
	WindspeedKmh    float64 `json:"windspeed_kmh"`
	WindspeedMph    float64 `json:"windspeed_mph"`
	WeatherCode     int     `json:"weather_code"`
	Description     string  `json:"description"`
	ObservationTime string  `json:"observation_time"`
}

// WeatherHourlyPoint is one hourly forecast sample
type WeatherHourlyPoint struct {
	Time         string  `json:"time"`
	TemperatureC float64 `json:"temperature_c"`
	WeatherCode  *int    `json:"weather_code,omitempty"`
}

// WeatherReport is the current conditions plus optional hourly forecast
type WeatherReport struct {
	Latitude  float64              `json:"latitude"`
	Longitude float64              `json:"longitude"`
	Current   WeatherCurrent       `json:"current"`
	Hourly    []WeatherHourlyPoint `json:"hourly,omitempty"`
}

// Stream is a live broadcast from a streaming platform
type Stream struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	Title        string `json:"title"`
	ViewerCount  int    `json:"viewer_count"`
	StartedAt    string `json:"started_at"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Language     string `json:"language,omitempty"`
	GameID       string `json:"game_id,omitempty"`
	GameName     string `json:"game_name,omitempty"`
}

// StreamsResponse is a page of live broadcasts
type StreamsResponse struct {
	Data  []Stream `json:"data"`
	Total int      `json:"total"`
}
