// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// merge.go - Layered config merging and environment overrides.
package config

import (
	"encoding/json"
	"strconv"
	"strings"
)

// deepMerge overlays updates onto base in place. When both sides hold a map
// under the same key the merge recurses; any other pairing replaces the base
// value wholesale.
func deepMerge(base, updates map[string]any) {
	for key, value := range updates {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := base[key].(map[string]any); ok {
				deepMerge(existing, sub)
				continue
			}
		}
		base[key] = value
	}
}

// envOverrides builds a nested override tree from environment variables that
// carry the KEEL__ prefix. Double underscores separate nesting levels and
// segment names are lowercased, so KEEL__LOGGING__LEVEL=debug yields
// {"logging": {"level": "debug"}}.
func envOverrides(env map[string]string) map[string]any {
	overrides := make(map[string]any)
	for key, raw := range env {
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		trimmed := strings.Trim(key[len(EnvPrefix):], "_")
		if trimmed == "" {
			continue
		}
		parts := strings.Split(trimmed, "__")

		target := overrides
		for _, segment := range parts[:len(parts)-1] {
			segmentKey := strings.ToLower(segment)
			next, ok := target[segmentKey].(map[string]any)
			if !ok {
				next = make(map[string]any)
				target[segmentKey] = next
			}
			target = next
		}
		target[strings.ToLower(parts[len(parts)-1])] = parseEnvValue(raw)
	}
	return overrides
}

// parseEnvValue coerces an environment string to the most specific value it
// can represent: bool, null, int, float, JSON, then plain string.
func parseEnvValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "null", "none":
		return nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}

	return raw
}
