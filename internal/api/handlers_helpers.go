// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/eventscope/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
//
// Example:
//
//	req := parseStreamsRequest(r)
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	    return
//	}
func validateRequest(v interface{}) *validation.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}

// getIntParam extracts an integer query parameter with a default value.
// Unparsable values fall back to the default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolParam extracts a boolean query parameter. Accepts the strconv
// spellings (1, t, true, 0, f, false...).
func getBoolParam(r *http.Request, key string, defaultValue bool) bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

// getFloatParam extracts an optional float query parameter. An absent
// parameter yields nil; a present but malformed one is an error.
func getFloatParam(r *http.Request, key string) (*float64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidParam, key)
	}
	return &f, nil
}
