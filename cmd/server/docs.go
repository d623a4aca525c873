// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

// Package main provides the Eventscope HTTP server
//
// Eventscope API aggregates nearby events from search providers, geocodes
// and ranks them by distance, and adds sports, weather and live stream context.
//
// @title Eventscope API
// @version 1.0
// @description Nearby event aggregation and geographic discovery
// @description
// @description ## Features
// @description
// @description - **Event search**: search provider results with a scraping fallback when the provider is rate limited
// @description - **Geographic ranking**: distance to the user, local-first ordering, map viewport filtering
// @description - **Sports**: league fixtures, results and team search
// @description - **Context**: weather at a coordinate, live streams for a game
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All endpoints except `/events` use this envelope:
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "lat must be a valid latitude (-90 to 90)",
// @description     "details": {"field": "lat", "tag": "latitude"},
// @description     "request_id": "2f6c..."
// @description   },
// @description   "meta": {"request_id": "2f6c...", "timestamp": "2026-10-17T12:34:56Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/eventscope/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3857
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Events
// @tag.description Aggregated nearby event search
//
// @tag.name Sports
// @tag.description League fixtures, results and teams
//
// @tag.name Context
// @tag.description Weather and live streams around an event
//
// @tag.name Health
// @tag.description Liveness, readiness and latency statistics
//
// @tag.name Operations
// @tag.description Provider cooldowns, circuit breakers and cache state
package main
