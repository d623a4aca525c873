// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package logging

import (
	"net/url"
	"strings"
)

const redacted = "REDACTED"

// sensitiveParams are query parameter names whose values never reach the logs.
var sensitiveParams = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"key":           true,
	"access_token":  true,
	"token":         true,
	"client_secret": true,
	"secret":        true,
	"password":      true,
	"authorization": true,
}

// IsSensitiveParam reports whether a query parameter or header name carries a credential.
func IsSensitiveParam(name string) bool {
	return sensitiveParams[strings.ToLower(name)]
}

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "abcd1234efgh5678" -> "abcd...5678"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactURL replaces credential query values in rawURL so the URL can be logged.
// Unparseable input is returned fully redacted.
//
//	logging.RedactURL("https://serpapi.com/search.json?q=jazz&api_key=abc")
//	// https://serpapi.com/search.json?api_key=REDACTED&q=jazz
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return redacted
	}
	if u.User != nil {
		u.User = url.User(redacted)
	}
	q := u.Query()
	changed := false
	for name := range q {
		if IsSensitiveParam(name) {
			q.Set(name, redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// RedactSecrets replaces every occurrence of the given secrets in s. Used for
// credentials embedded in URL paths and upstream error bodies.
func RedactSecrets(s string, secrets ...string) string {
	for _, secret := range secrets {
		// Short values would blank out unrelated text.
		if len(secret) < 4 {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

// TruncateString truncates a string to a maximum length.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
