// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Layered TOML configuration for keel.
//
// Effective configuration is built from three layers, lowest precedence
// first: built-in defaults, the TOML config file, and KEEL__* environment
// overrides. Decoding is permissive: unknown keys are ignored and values of
// the wrong type fall back to their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/keel/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

// OutputConfig controls rendering on stdout.
type OutputConfig struct {
	Color      string `toml:"color"`
	NoProgress bool   `toml:"no_progress"`
}

// RunConfig holds defaults for the run command. TimeoutSeconds and
// Parallelism are pointers so that "not configured" stays distinct from zero.
type RunConfig struct {
	DefaultTask    string `toml:"default_task"`
	Profile        string `toml:"profile"`
	TimeoutSeconds *int   `toml:"timeout_seconds"`
	Parallelism    *int   `toml:"parallelism"`
}

// AppConfig is the effective configuration after all layers are merged.
type AppConfig struct {
	Logging LoggingConfig `toml:"logging"`
	Output  OutputConfig  `toml:"output"`
	Run     RunConfig     `toml:"run"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Color: "auto"},
		Run:     RunConfig{DefaultTask: "default", Profile: "default"},
	}
}

// defaultTree mirrors Default as a merge tree. Keeping the tree and the
// struct in sync is checked by a test.
func defaultTree() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
			"file":  "",
			"json":  false,
		},
		"output": map[string]any{
			"color":       "auto",
			"no_progress": false,
		},
		"run": map[string]any{
			"default_task":    "default",
			"profile":         "default",
			"timeout_seconds": nil,
			"parallelism":     nil,
		},
	}
}

// defaultConfigTemplate is written by init and config reset. The
// {config_path} placeholder is substituted with the target location.
const defaultConfigTemplate = `# Default configuration for keel.
# Copy this file to {config_path} to customize.

[logging]
# Supported levels: trace, debug, info, warning, error, critical
level = "info"
file = ""
json = false

[output]
# Color policies: auto, always, never
color = "auto"
no_progress = false

[run]
default_task = "default"
profile = "default"
# timeout_seconds = 60
# parallelism = 4
`

// =============================================================================
// LOADING
// =============================================================================

// Load builds the effective configuration. explicitPath, when non-empty,
// names the config file to read (a directory is taken to contain
// config.toml); otherwise the platform default location is used. A missing
// or unreadable file yields defaults; a file that exists but fails to parse
// is an error.
func Load(explicitPath string, env map[string]string) (*AppConfig, string, error) {
	resolved := ResolveConfigPath(explicitPath, env)

	merged := defaultTree()

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		var fileTree map[string]any
		if err := toml.Unmarshal(data, &fileTree); err != nil {
			return nil, resolved, fmt.Errorf("parse %s: %w", resolved, err)
		}
		deepMerge(merged, fileTree)
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission):
		// Proceed with defaults.
	default:
		// Other read failures (e.g. reading a directory) also fall back
		// to defaults rather than aborting.
	}

	if overrides := envOverrides(env); len(overrides) > 0 {
		deepMerge(merged, overrides)
	}

	return decodeTree(merged, env), resolved, nil
}

// ResolveConfigPath returns the config file path that Load would read.
func ResolveConfigPath(explicitPath string, env map[string]string) string {
	if explicitPath == "" {
		return DefaultConfigPath(env)
	}

	path := ExpandPath(explicitPath, env)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, ConfigFileName)
	}
	return path
}

// WriteDefault writes the default config template to path, creating parent
// directories. When the file already exists and force is false the existing
// file is left untouched.
func WriteDefault(path string, force bool) (written bool, err error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	content := strings.ReplaceAll(defaultConfigTemplate, "{config_path}", path)
	if err := util.AtomicWriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}

// =============================================================================
// DECODING
// =============================================================================

// decodeTree converts a merged tree into AppConfig, falling back to defaults
// for missing or malformed leaves.
func decodeTree(tree map[string]any, env map[string]string) *AppConfig {
	cfg := Default()

	logging := subTree(tree, "logging")
	cfg.Logging.Level = strings.ToLower(stringOr(logging["level"], cfg.Logging.Level))
	if file := stringOr(logging["file"], ""); file != "" {
		cfg.Logging.File = ExpandPath(file, env)
	}
	cfg.Logging.JSON = boolOr(logging["json"], cfg.Logging.JSON)

	output := subTree(tree, "output")
	cfg.Output.Color = strings.ToLower(stringOr(output["color"], cfg.Output.Color))
	cfg.Output.NoProgress = boolOr(output["no_progress"], cfg.Output.NoProgress)

	run := subTree(tree, "run")
	cfg.Run.DefaultTask = stringOr(run["default_task"], cfg.Run.DefaultTask)
	cfg.Run.Profile = stringOr(run["profile"], cfg.Run.Profile)
	cfg.Run.TimeoutSeconds = optionalInt(run["timeout_seconds"])
	cfg.Run.Parallelism = optionalInt(run["parallelism"])

	return cfg
}

func subTree(tree map[string]any, key string) map[string]any {
	if sub, ok := tree[key].(map[string]any); ok {
		return sub
	}
	return map[string]any{}
}

func stringOr(value any, fallback string) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return fallback
		}
		return v
	case nil:
		return fallback
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolOr(value any, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
		return fallback
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return fallback
	}
}

func optionalInt(value any) *int {
	switch v := value.(type) {
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	case string:
		if v == "" {
			return nil
		}
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// AsMap returns the configuration as an ordinary map, suitable for JSON and
// YAML rendering. Unset optional ints render as null.
func (c *AppConfig) AsMap() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": c.Logging.Level,
			"file":  c.Logging.File,
			"json":  c.Logging.JSON,
		},
		"output": map[string]any{
			"color":       c.Output.Color,
			"no_progress": c.Output.NoProgress,
		},
		"run": map[string]any{
			"default_task":    c.Run.DefaultTask,
			"profile":         c.Run.Profile,
			"timeout_seconds": intOrNil(c.Run.TimeoutSeconds),
			"parallelism":     intOrNil(c.Run.Parallelism),
		},
	}
}

// SerializeTOML renders the configuration as TOML.
func (c *AppConfig) SerializeTOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
