// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

// Package presentation turns ranked events into the response shape: limit
// trimming, distance rounding and the viewport summary clients use to fit
// their map.
package presentation
