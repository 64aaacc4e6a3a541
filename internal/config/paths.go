// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// paths.go - Platform directory resolution for keel.
//
// All resolvers take the environment as an explicit map so tests can exercise
// them without mutating the process environment. XDG_* variables win on every
// platform when set; otherwise the resolver falls back to the conventional
// per-platform location. Resolvers never create directories.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	// AppName is the canonical application name used to derive directory
	// names, the config filename, and the environment variable prefix.
	AppName = "keel"

	// EnvPrefix marks environment variables that override config values.
	EnvPrefix = "KEEL__"

	// ConfigFileName is the name of the TOML config file inside the
	// application's config directory.
	ConfigFileName = "config.toml"
)

// EnvironMap returns the process environment as a map. Later duplicates win,
// matching os.Environ ordering.
func EnvironMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// =============================================================================
// DIRECTORY RESOLUTION
// =============================================================================

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath(env map[string]string) string {
	if base, ok := env["XDG_CONFIG_HOME"]; ok && base != "" {
		return filepath.Join(ExpandPath(base, env), AppName, ConfigFileName)
	}

	if runtime.GOOS == "windows" {
		if dir, ok := env["APPDATA"]; ok && dir != "" {
			return filepath.Join(dir, AppName, ConfigFileName)
		}
	}

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppName, ConfigFileName)
	}

	return filepath.Join(homeDir(env), ".config", AppName, ConfigFileName)
}

// DefaultDataDir returns the absolute path of the data directory.
func DefaultDataDir(env map[string]string) string {
	if base, ok := env["XDG_DATA_HOME"]; ok && base != "" {
		return filepath.Join(ExpandPath(base, env), AppName)
	}

	if runtime.GOOS == "windows" {
		if dir, ok := env["LOCALAPPDATA"]; ok && dir != "" {
			return filepath.Join(dir, AppName)
		}
	}

	if runtime.GOOS == "darwin" {
		if dir, err := os.UserCacheDir(); err == nil && dir != "" {
			// macOS keeps application data under ~/Library.
			return filepath.Join(filepath.Dir(dir), "Application Support", AppName)
		}
	}

	return filepath.Join(homeDir(env), ".local", "share", AppName)
}

// DefaultStateDir returns the absolute path of the state directory.
func DefaultStateDir(env map[string]string) string {
	if base, ok := env["XDG_STATE_HOME"]; ok && base != "" {
		return filepath.Join(ExpandPath(base, env), AppName)
	}

	if runtime.GOOS == "windows" {
		if dir, ok := env["LOCALAPPDATA"]; ok && dir != "" {
			return filepath.Join(dir, AppName)
		}
	}

	return filepath.Join(homeDir(env), ".local", "state", AppName)
}

// DefaultCacheDir returns the absolute path of the cache directory.
func DefaultCacheDir(env map[string]string) string {
	if base, ok := env["XDG_CACHE_HOME"]; ok && base != "" {
		return filepath.Join(ExpandPath(base, env), AppName)
	}

	if runtime.GOOS == "windows" {
		if dir, ok := env["LOCALAPPDATA"]; ok && dir != "" {
			return filepath.Join(dir, AppName, "cache")
		}
	}

	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppName)
	}

	return filepath.Join(homeDir(env), ".cache", AppName)
}

// =============================================================================
// PATH EXPANSION
// =============================================================================

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}|\$(\w+)`)

// ExpandPath expands a leading ~ and $VAR / ${VAR} references against the
// given environment map. References to unset variables are left literal.
func ExpandPath(raw string, env map[string]string) string {
	expanded := raw
	if expanded == "~" || strings.HasPrefix(expanded, "~/") ||
		strings.HasPrefix(expanded, "~"+string(filepath.Separator)) {
		expanded = filepath.Join(homeDir(env), expanded[1:])
	}

	expanded = envVarPattern.ReplaceAllStringFunc(expanded, func(match string) string {
		name := strings.Trim(match[1:], "{}")
		if value, ok := env[name]; ok {
			return value
		}
		return match
	})

	return expanded
}

func homeDir(env map[string]string) string {
	if home, ok := env["HOME"]; ok && home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
