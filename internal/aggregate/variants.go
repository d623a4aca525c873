// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package aggregate

import (
	"strings"

	"github.com/tomtom215/eventscope/internal/geo"
)

// BaseQuery returns the query text every variant is built from. Blank text
// becomes the default query, and text that does not mention the keyword is
// prefixed so the search engine stays in its events vertical.
func (p Policy) BaseQuery(text string) string {
	base := strings.TrimSpace(text)
	if base == "" {
		base = p.DefaultQuery
	}
	if !strings.Contains(strings.ToLower(base), strings.ToLower(p.QueryKeyword)) {
		base = strings.TrimSpace(p.QueryPrefix + " " + base)
	}
	return base
}

// Variants lists the query strings to try, most local first. The base query
// always comes last. loc may be nil.
func Variants(base string, loc *geo.Locality) []string {
	var candidates []string
	if loc != nil && (loc.City != "" || loc.State != "") {
		city, state := loc.City, loc.State
		if city != "" {
			candidates = append(candidates, base+" "+city, base+" in "+city)
			if state != "" {
				candidates = append(candidates, base+" "+city+" "+state, base+" in "+city+" "+state)
			}
		} else {
			candidates = append(candidates, base+" "+state)
		}
		candidates = append(candidates, base+" near me")
		if state != "" {
			candidates = append(candidates, base+" "+state)
		}
	}
	candidates = append(candidates, base)

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, v := range candidates {
		k := strings.ToLower(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// LocationHint is the free-text location passed to the primary provider:
// "City, State", "City", "State" or empty.
func LocationHint(loc *geo.Locality) string {
	if loc == nil {
		return ""
	}
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + ", " + loc.State
	case loc.City != "":
		return loc.City
	default:
		return loc.State
	}
}

// FallbackQuery is the query handed to the scraping fallback. It names the
// user's city when known, otherwise it is the base query.
func FallbackQuery(base string, loc *geo.Locality) string {
	if loc == nil || loc.City == "" {
		return base
	}
	if loc.State != "" {
		return "events in " + loc.City + " " + loc.State
	}
	return "events in " + loc.City
}
