// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// flags.go - Global flags and their resolution against configuration.
//
// Flags never mutate the loaded configuration. Each runtime policy has a
// pure resolver that combines the flag state with the config (and, where
// relevant, the environment) into a final value.
package cli

import (
	"strings"

	"github.com/jeranaias/keel/internal/config"
	"github.com/jeranaias/keel/internal/logging"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Color policies.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// CommonFlags holds the global flags shared by every command.
type CommonFlags struct {
	ConfigPath     string
	Quiet          bool
	Verbose        int
	Debug          bool
	Trace          bool
	JSONOutput     bool
	YAMLOutput     bool
	NoColor        bool
	Color          string
	DryRun         bool
	AssumeYes      bool
	NoProgress     bool
	Diagnostics    bool
	TimeoutSeconds *int
	Parallelism    *int
}

// DefaultFlags returns CommonFlags in their documented defaults.
func DefaultFlags() CommonFlags {
	return CommonFlags{Color: ColorAuto}
}

// =============================================================================
// RESOLVERS
// =============================================================================

// ResolveLogLevel combines verbosity flags with the configured level.
// Precedence: --trace, then --debug / -vv, then a single -v (which promotes
// quiet configured levels to info), then --quiet, then the config value.
func (f CommonFlags) ResolveLogLevel(cfg *config.AppConfig) logging.Level {
	configured := strings.ToLower(cfg.Logging.Level)
	if configured == "" {
		configured = "info"
	}

	if f.Trace {
		return logging.LevelTrace
	}
	if f.Debug || f.Verbose >= 2 {
		return logging.LevelDebug
	}
	if f.Verbose == 1 {
		switch configured {
		case "warning", "error", "critical":
			return logging.LevelInfo
		}
	}
	if f.Quiet {
		return logging.LevelError
	}

	return logging.ParseLevel(configured)
}

// ResolveTimeout returns the effective timeout in seconds, or nil when
// neither the flag nor the config sets one.
func (f CommonFlags) ResolveTimeout(cfg *config.AppConfig) *int {
	if f.TimeoutSeconds != nil {
		return f.TimeoutSeconds
	}
	return cfg.Run.TimeoutSeconds
}

// ResolveParallelism returns the effective degree of parallelism, or nil.
func (f CommonFlags) ResolveParallelism(cfg *config.AppConfig) *int {
	if f.Parallelism != nil {
		return f.Parallelism
	}
	return cfg.Run.Parallelism
}

// ResolveColorPolicy decides the color policy. Flags beat the NO_COLOR and
// FORCE_COLOR conventions, which beat the config value. An unrecognized
// config value degrades to auto.
func (f CommonFlags) ResolveColorPolicy(cfg *config.AppConfig, env map[string]string) string {
	if f.NoColor {
		return ColorNever
	}
	if f.Color != "" && f.Color != ColorAuto {
		return f.Color
	}
	if _, present := env["NO_COLOR"]; present {
		return ColorNever
	}
	if env["FORCE_COLOR"] != "" {
		return ColorAlways
	}

	configured := strings.ToLower(cfg.Output.Color)
	switch configured {
	case ColorAuto, ColorAlways, ColorNever:
		return configured
	}
	return ColorAuto
}

// ResolveOutputFormat decides the output format. --json and --yaml are
// mutually exclusive.
func (f CommonFlags) ResolveOutputFormat() (string, error) {
	if f.JSONOutput && f.YAMLOutput {
		return "", NewUsageError("--json and --yaml cannot be used together")
	}
	if f.JSONOutput {
		return FormatJSON, nil
	}
	if f.YAMLOutput {
		return FormatYAML, nil
	}
	return FormatHuman, nil
}
