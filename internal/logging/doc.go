// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package logging is the single zerolog logger every Eventscope package writes to.

Provider adapters, the aggregation engine, the cache janitor and the HTTP
layer all log through it, so a request can be followed from the handler down
to each upstream call by its request_id.

	logging.Init(logging.Config{Level: "info", Format: "json", Version: version})

	logging.Ctx(ctx).Warn().
		Str("provider", "serpapi").
		Dur("cooldown", 12*time.Hour).
		Msg("Primary provider quota exhausted, switching to fallback")

# Fields

Every line carries service and, when set, version. Request-scoped lines add
request_id and correlation_id through Ctx. Provider lines use provider, query
and offset; breaker lines use breaker.

# Secrets

SerpAPI, ScraperAPI and TheSportsDB take their keys in the URL and Twitch
sends a client secret. Pass upstream URLs through RedactURL and error text
through RedactSecrets before logging them.

# Supervisor events

NewSlogLogger exposes the same logger as a *slog.Logger for sutureslog, so
service restarts appear in the same stream and format.
*/
package logging
