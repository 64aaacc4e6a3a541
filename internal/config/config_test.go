// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", ConfigFileName)

	cfg, resolved, err := Load(path, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[run]
timeout_seconds = 30
`)

	cfg, _, err := Load(path, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Output.Color, "untouched section keeps defaults")
	require.NotNil(t, cfg.Run.TimeoutSeconds)
	assert.Equal(t, 30, *cfg.Run.TimeoutSeconds)
	assert.Nil(t, cfg.Run.Parallelism)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
`)

	env := map[string]string{"KEEL__LOGGING__LEVEL": "error"}
	cfg, _, err := Load(path, env)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, "[logging\nlevel = ???")

	_, resolved, err := Load(path, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), resolved)
}

func TestLoadBadFieldValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
[logging]
json = "not-a-bool"

[run]
timeout_seconds = "soon"
`)

	cfg, _, err := Load(path, map[string]string{})
	require.NoError(t, err)

	assert.False(t, cfg.Logging.JSON)
	assert.Nil(t, cfg.Run.TimeoutSeconds)
}

func TestLoadLowercasesLevelAndColor(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "DEBUG"

[output]
color = "Never"
`)

	cfg, _, err := Load(path, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoadExpandsLogFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
file = "~/logs/keel.log"
`)

	env := map[string]string{"HOME": "/home/tester"}
	cfg, _, err := Load(path, env)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/tester", "logs", "keel.log"), cfg.Logging.File)
}

func TestLoadEnvNullClearsToDefault(t *testing.T) {
	path := writeConfig(t, `
[run]
timeout_seconds = 30
`)

	env := map[string]string{"KEEL__RUN__TIMEOUT_SECONDS": "null"}
	cfg, _, err := Load(path, env)
	require.NoError(t, err)

	assert.Nil(t, cfg.Run.TimeoutSeconds)
}

func TestResolveConfigPathDirectoryGetsFilename(t *testing.T) {
	dir := t.TempDir()
	got := ResolveConfigPath(dir, map[string]string{})
	assert.Equal(t, filepath.Join(dir, ConfigFileName), got)
}

func TestResolveConfigPathExpands(t *testing.T) {
	env := map[string]string{"HOME": "/home/tester"}
	got := ResolveConfigPath("~/keel.toml", env)
	assert.Equal(t, filepath.Join("/home/tester", "keel.toml"), got)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFileName)

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, path, "placeholder substituted with target path")
	assert.NotContains(t, content, "{config_path}")

	// Round-trip: the written template must load cleanly as defaults.
	cfg, _, err := Load(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefaultRespectsExisting(t *testing.T) {
	path := writeConfig(t, "custom = true\n")

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.False(t, written)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "custom = true\n", string(data))
}

func TestWriteDefaultForceOverwrites(t *testing.T) {
	path := writeConfig(t, "custom = true\n")

	written, err := WriteDefault(path, true)
	require.NoError(t, err)
	assert.True(t, written)

	data, _ := os.ReadFile(path)
	assert.NotContains(t, string(data), "custom")
}

func TestDefaultTreeMatchesDefaults(t *testing.T) {
	cfg := decodeTree(defaultTree(), map[string]string{})
	assert.Equal(t, Default(), cfg)
}

func TestAsMapNullsForUnsetOptionals(t *testing.T) {
	m := Default().AsMap()
	run := m["run"].(map[string]any)
	assert.Nil(t, run["timeout_seconds"])
	assert.Nil(t, run["parallelism"])
}

func TestSerializeTOMLRoundTrips(t *testing.T) {
	cfg := Default()
	timeout := 45
	cfg.Run.TimeoutSeconds = &timeout

	out, err := cfg.SerializeTOML()
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "timeout_seconds = 45"))

	path := writeConfig(t, out)
	reloaded, _, err := Load(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
