// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Key namespaces shared by every component that writes into the cache.
const (
	PrefixCooldown = "cooldown"
	PrefixToken    = "token"
	PrefixStale    = "stale"
)

// GenerateKey creates a cache key from a prefix and parameters.
//
// Parameters are serialized with go-json, which emits struct fields in
// declaration order and map keys sorted, so field-wise equal values always
// hash to the same key. Callers must sort any slice whose order is not
// significant before passing it in.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", prefix, params)
	}

	// Hash the JSON data for a compact key
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}

// CooldownKey is the presence flag marking provider as rate limited.
func CooldownKey(provider string) string {
	return PrefixCooldown + ":" + provider
}

// TokenKey holds a provider's cached access token.
func TokenKey(provider string) string {
	return PrefixToken + ":" + provider
}

// StaleKey holds the last non-empty result a provider returned for query.
func StaleKey(provider, query string) string {
	return PrefixStale + ":" + provider + ":" + strings.ToLower(strings.TrimSpace(query))
}
