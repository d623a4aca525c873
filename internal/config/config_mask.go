// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package config

// MaskCredential returns a masked version of a credential for display purposes.
// Shows only the last 4 characters preceded by asterisks.
func MaskCredential(credential string) string {
	if credential == "" {
		return ""
	}

	if len(credential) <= 4 {
		return "****"
	}

	return "****..." + credential[len(credential)-4:]
}

// ProviderSummary describes which upstreams are configured, with masked
// credentials, for the startup log line.
func (c *Config) ProviderSummary() map[string]string {
	status := func(enabled bool, key string) string {
		if !enabled {
			return "not configured"
		}
		return "configured " + MaskCredential(key)
	}

	return map[string]string{
		"serpapi":  status(c.SerpAPI.Enabled(), c.SerpAPI.APIKey),
		"scraper":  status(c.Scraper.Enabled(), c.Scraper.APIKey),
		"sportsdb": status(true, c.SportsDB.APIKey),
		"twitch":   status(c.Twitch.Enabled(), c.Twitch.ClientID),
		"weather":  "configured",
		"geocoder": "configured",
	}
}
