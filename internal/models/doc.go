// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package models defines the data structures shared by providers, the
aggregation engine and the HTTP API.

Key Components:

  - Event: normalized upstream event, immutable after normalization
  - RankedEvent: an Event plus its request-scoped distance from the user
  - Query: one "events near me" request, with Normalized for cache keys
  - Result: ranked events plus fallback flags and viewport summary
  - SportsEvent, LeagueSnapshot, Team: league fixture data
  - WeatherReport: current conditions and hourly forecast
  - Stream: live broadcasts for a game category

All JSON tags use snake_case and optional fields are omitted when empty.
*/
package models
