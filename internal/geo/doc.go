// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package geo provides distance math, viewport boxes and geocoding.

Distances use the haversine formula on a sphere of radius 6371 km, which is
accurate to well under one percent for the ranking radii used by the
aggregation engine.

Geocoding goes through the Geocoder interface. NominatimClient talks to
OpenStreetMap Nominatim with a throttled rate.Limiter and an identifying
User-Agent; CachedGeocoder wraps any Geocoder with the shared TTL cache and
turns every failure into a nil result, so a geocoder outage only degrades
location bias.

	geocoder := geo.NewCachedGeocoder(geo.NewNominatimClient(geo.NominatimConfig{}), sharedCache)
	if loc := geocoder.ReverseGeocode(ctx, 30.2672, -97.7431); !loc.Empty() {
	    // loc.City == "Austin", loc.State == "Texas"
	}
*/
package geo
