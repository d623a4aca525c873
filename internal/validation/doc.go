// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

// Package validation validates HTTP request structs with go-playground/validator v10.
//
// A single validator is built on first use and shared by every handler; it
// caches struct metadata, so request types are parsed once. Fields are
// reported by their query tag (or json tag) rather than their Go name, which
// keeps messages aligned with the parameters a client sent.
//
// # Custom Rules
//
//   - chip: an upstream filter chip of the form key:value (date:today)
//   - geo.BoundingBox: every corner within coordinate bounds and min <= max
//     on both axes, checked whenever a request embeds a non-nil box
//
// The built-in latitude, longitude, min, max, oneof and required_with tags
// cover the rest.
//
// # Usage
//
//	type EventsRequest struct {
//	    Lat      *float64         `query:"lat" validate:"omitempty,latitude,required_with=Lon"`
//	    Lon      *float64         `query:"lon" validate:"omitempty,longitude,required_with=Lat"`
//	    Viewport *geo.BoundingBox `validate:"omitempty"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == "VALIDATION_ERROR"
//	}
//
// One failure produces its own message with field, tag and value details;
// several failures are joined with "; " and listed under details.fields.
package validation
