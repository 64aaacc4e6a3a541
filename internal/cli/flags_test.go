// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/keel/internal/config"
	"github.com/jeranaias/keel/internal/logging"
)

func configWithLevel(level string) *config.AppConfig {
	cfg := config.Default()
	cfg.Logging.Level = level
	return cfg
}

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		flags CommonFlags
		level string
		want  logging.Level
	}{
		{"trace beats everything", CommonFlags{Trace: true, Debug: true, Quiet: true}, "error", logging.LevelTrace},
		{"debug flag", CommonFlags{Debug: true}, "error", logging.LevelDebug},
		{"double verbose", CommonFlags{Verbose: 2}, "error", logging.LevelDebug},
		{"triple verbose", CommonFlags{Verbose: 3}, "info", logging.LevelDebug},
		{"single verbose promotes warning to info", CommonFlags{Verbose: 1}, "warning", logging.LevelInfo},
		{"single verbose promotes error to info", CommonFlags{Verbose: 1}, "error", logging.LevelInfo},
		{"single verbose keeps debug config", CommonFlags{Verbose: 1}, "debug", logging.LevelDebug},
		{"quiet", CommonFlags{Quiet: true}, "info", logging.LevelError},
		{"quiet loses to debug", CommonFlags{Quiet: true, Debug: true}, "info", logging.LevelDebug},
		{"config level", CommonFlags{}, "critical", logging.LevelCritical},
		{"warn alias", CommonFlags{}, "warn", logging.LevelWarning},
		{"unknown config level", CommonFlags{}, "chatty", logging.LevelInfo},
		{"empty config level", CommonFlags{}, "", logging.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.flags.ResolveLogLevel(configWithLevel(tt.level))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTimeoutFlagWins(t *testing.T) {
	cfg := config.Default()
	configured := 60
	cfg.Run.TimeoutSeconds = &configured

	flagged := 10
	flags := CommonFlags{TimeoutSeconds: &flagged}

	got := flags.ResolveTimeout(cfg)
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)
}

func TestResolveTimeoutFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	configured := 60
	cfg.Run.TimeoutSeconds = &configured

	got := CommonFlags{}.ResolveTimeout(cfg)
	require.NotNil(t, got)
	assert.Equal(t, 60, *got)
}

func TestResolveTimeoutUnset(t *testing.T) {
	assert.Nil(t, CommonFlags{}.ResolveTimeout(config.Default()))
}

func TestResolveParallelism(t *testing.T) {
	cfg := config.Default()
	configured := 4
	cfg.Run.Parallelism = &configured

	got := CommonFlags{}.ResolveParallelism(cfg)
	require.NotNil(t, got)
	assert.Equal(t, 4, *got)

	flagged := 8
	got = CommonFlags{Parallelism: &flagged}.ResolveParallelism(cfg)
	require.NotNil(t, got)
	assert.Equal(t, 8, *got)
}

func TestResolveColorPolicy(t *testing.T) {
	configWithColor := func(color string) *config.AppConfig {
		cfg := config.Default()
		cfg.Output.Color = color
		return cfg
	}

	tests := []struct {
		name     string
		flags    CommonFlags
		cfgColor string
		env      map[string]string
		want     string
	}{
		{"no-color flag wins", CommonFlags{NoColor: true, Color: ColorAlways}, "always", map[string]string{"FORCE_COLOR": "1"}, ColorNever},
		{"explicit color flag", CommonFlags{Color: ColorAlways}, "never", map[string]string{"NO_COLOR": ""}, ColorAlways},
		{"NO_COLOR present even empty", CommonFlags{Color: ColorAuto}, "always", map[string]string{"NO_COLOR": ""}, ColorNever},
		{"FORCE_COLOR nonempty", CommonFlags{Color: ColorAuto}, "never", map[string]string{"FORCE_COLOR": "1"}, ColorAlways},
		{"FORCE_COLOR empty ignored", CommonFlags{Color: ColorAuto}, "never", map[string]string{"FORCE_COLOR": ""}, ColorNever},
		{"config value", CommonFlags{Color: ColorAuto}, "never", map[string]string{}, ColorNever},
		{"invalid config degrades to auto", CommonFlags{Color: ColorAuto}, "rainbow", map[string]string{}, ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.flags.ResolveColorPolicy(configWithColor(tt.cfgColor), tt.env)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	format, err := CommonFlags{}.ResolveOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, FormatHuman, format)

	format, err = CommonFlags{JSONOutput: true}.ResolveOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = CommonFlags{YAMLOutput: true}.ResolveOutputFormat()
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	_, err = CommonFlags{JSONOutput: true, YAMLOutput: true}.ResolveOutputFormat()
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}
