// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

// Package docs holds the Swagger document built from the handler annotations
// by swaggo/swag (swag init -g cmd/server/docs.go). Regenerate it after
// changing any @-annotation.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/eventscope/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events": {
            "get": {
                "description": "Aggregates events from the search provider (with scraping fallback), geocodes and ranks them by distance to the user, and optionally restricts them to a map viewport. The viewport needs all four bounds.",
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Search nearby events",
                "parameters": [
                    {"maxLength": 200, "type": "string", "description": "Free-text query, e.g. 'concerts in Austin'", "name": "q", "in": "query"},
                    {"maximum": 50, "minimum": 1, "type": "integer", "default": 1, "description": "Result page (1-50)", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 0, "type": "integer", "default": 20, "description": "Maximum number of events (0 uses the default)", "name": "limit", "in": "query"},
                    {"type": "string", "example": "date:today,event_type:Virtual-Event", "description": "Comma-separated filter chips", "name": "htichips", "in": "query"},
                    {"maximum": 90, "minimum": -90, "type": "number", "description": "User latitude", "name": "lat", "in": "query"},
                    {"maximum": 180, "minimum": -180, "type": "number", "description": "User longitude", "name": "lon", "in": "query"},
                    {"type": "number", "description": "Viewport south bound", "name": "min_lat", "in": "query"},
                    {"type": "number", "description": "Viewport north bound", "name": "max_lat", "in": "query"},
                    {"type": "number", "description": "Viewport west bound", "name": "min_lon", "in": "query"},
                    {"type": "number", "description": "Viewport east bound", "name": "max_lon", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Ranked events", "schema": {"$ref": "#/definitions/presentation.EventsResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Aggregation engine not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/sports": {
            "get": {
                "description": "Returns the league aliases understood by the sports endpoints, plus the provider's full sport catalogue when it is reachable.",
                "produces": ["application/json"],
                "tags": ["Sports"],
                "summary": "List sports",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Sports source not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/sports/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sports"],
                "summary": "Search teams",
                "parameters": [
                    {"maxLength": 100, "minLength": 2, "type": "string", "description": "Team name", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Provider quota exhausted", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Sports source not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/sports/{sport}/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sports"],
                "summary": "League fixtures and results",
                "parameters": [
                    {"type": "string", "example": "nba", "description": "League alias", "name": "sport", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid sport", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Sports source not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/sports/{sport}/fixtures": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sports"],
                "summary": "Upcoming league fixtures as events",
                "parameters": [
                    {"type": "string", "example": "nfl", "description": "League alias", "name": "sport", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid sport", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Sports source not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/weather": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Weather at a coordinate",
                "parameters": [
                    {"maximum": 90, "minimum": -90, "type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"maximum": 180, "minimum": -180, "type": "number", "description": "Longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "boolean", "default": false, "description": "Include the hourly forecast", "name": "hourly", "in": "query"},
                    {"maximum": 168, "minimum": 1, "type": "integer", "default": 24, "description": "Hours of forecast (1-168)", "name": "hours", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Weather source not available", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/streams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Live streams for a game",
                "parameters": [
                    {"type": "string", "example": "509658", "description": "Streaming platform game/category ID", "name": "game_id", "in": "query", "required": true},
                    {"maximum": 100, "minimum": 0, "type": "integer", "default": 20, "description": "Maximum streams (1-100)", "name": "first", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Provider rate limited", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Provider failure", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Streaming credentials not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/providers/status": {
            "get": {
                "description": "Shows which event providers are in a rate-limit cooldown, the state of every circuit breaker, and shared cache counters.",
                "produces": ["application/json"],
                "tags": ["Operations"],
                "summary": "Provider status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Returns 200 OK if the process is alive, regardless of external dependencies.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Kubernetes liveness probe",
                "responses": {
                    "200": {"description": "Service is alive", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Returns 200 OK once the aggregation engine is wired. Returns 503 if not ready.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Kubernetes readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Service is not ready", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/performance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Request latency statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {},
                "request_id": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "duration_ms": {"type": "integer"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"}
            }
        },
        "models.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "source": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "url": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "timezone": {"type": "string"},
                "venue": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "price": {"type": "string"}
            }
        },
        "models.RankedEvent": {
            "type": "object",
            "allOf": [{"$ref": "#/definitions/models.Event"}],
            "properties": {
                "distance_km": {"type": "number"}
            }
        },
        "models.ViewportSummary": {
            "type": "object",
            "properties": {
                "min_lat": {"type": "number"},
                "max_lat": {"type": "number"},
                "min_lon": {"type": "number"},
                "max_lon": {"type": "number"},
                "center_lat": {"type": "number"},
                "center_lon": {"type": "number"},
                "span_lat": {"type": "number"},
                "span_lon": {"type": "number"}
            }
        },
        "presentation.EventsResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.RankedEvent"}},
                "events": {"type": "array", "items": {"$ref": "#/definitions/models.RankedEvent"}},
                "serpapi_exhausted": {"type": "boolean"},
                "scraper_fallback": {"type": "boolean"},
                "scraper_limited": {"type": "boolean"},
                "viewport": {"$ref": "#/definitions/models.ViewportSummary"}
            }
        }
    },
    "tags": [
        {"description": "Aggregated nearby event search", "name": "Events"},
        {"description": "League fixtures, results and teams", "name": "Sports"},
        {"description": "Weather and live streams around an event", "name": "Context"},
        {"description": "Liveness, readiness and latency statistics", "name": "Health"},
        {"description": "Provider cooldowns, circuit breakers and cache state", "name": "Operations"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3857",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Eventscope API",
	Description:      "Nearby event aggregation and geographic discovery",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
