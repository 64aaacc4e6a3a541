// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Per-invocation runtime context for keel.
//
// NewRuntime is the single place where flags, config, environment, and
// terminal state are combined. Handlers receive the finished context and
// never consult os.Environ or load config themselves.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/keel/internal/config"
	"github.com/jeranaias/keel/internal/logging"
)

// RuntimeContext carries everything a command handler needs for one
// invocation.
type RuntimeContext struct {
	Flags      CommonFlags
	Config     *config.AppConfig
	ConfigPath string

	DataDir  string
	StateDir string
	CacheDir string

	OutputFormat string
	ColorPolicy  string

	Log    *logging.Sink
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	StartedAt    time.Time
	InvocationID string
	Env          map[string]string
}

// NewRuntime builds the runtime context: resolves the output format and
// color policy, loads layered configuration, opens the log sink, and
// validates cross-cutting constraints. Flag conflicts surface here, before
// any command dispatch.
func NewRuntime(flags CommonFlags, env map[string]string) (*RuntimeContext, error) {
	outputFormat, err := flags.ResolveOutputFormat()
	if err != nil {
		return nil, err
	}

	cfg, configPath, err := config.Load(flags.ConfigPath, env)
	if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}

	colorPolicy := flags.ResolveColorPolicy(cfg, env)
	ApplyColorPolicy(colorPolicy)

	invocationID := uuid.NewString()
	sink, err := logging.NewSink(os.Stderr, logging.Options{
		Level:        flags.ResolveLogLevel(cfg),
		JSON:         cfg.Logging.JSON,
		FilePath:     cfg.Logging.File,
		Diagnostics:  flags.Diagnostics,
		InvocationID: invocationID,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	if timeout := flags.ResolveTimeout(cfg); timeout != nil && *timeout < 0 {
		sink.Close()
		return nil, NewUsageError("timeout must be positive, got %d", *timeout)
	}

	return &RuntimeContext{
		Flags:        flags,
		Config:       cfg,
		ConfigPath:   configPath,
		DataDir:      config.DefaultDataDir(env),
		StateDir:     config.DefaultStateDir(env),
		CacheDir:     config.DefaultCacheDir(env),
		OutputFormat: outputFormat,
		ColorPolicy:  colorPolicy,
		Log:          sink,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		StartedAt:    time.Now().UTC(),
		InvocationID: invocationID,
		Env:          env,
	}, nil
}

// Close releases runtime resources.
func (ctx *RuntimeContext) Close() error {
	if ctx.Log != nil {
		return ctx.Log.Close()
	}
	return nil
}

// =============================================================================
// RENDERING
// =============================================================================

// Render writes a result to stdout in the resolved output format. In JSON
// and YAML modes only the payload is emitted (or {"message": ...} when the
// payload is nil), keeping output machine-readable. In human mode the
// message gets a styled check mark and the payload renders as dim key/value
// lines; --quiet suppresses the message line.
func (ctx *RuntimeContext) Render(message string, payload map[string]any) error {
	switch ctx.OutputFormat {
	case FormatJSON:
		data := payload
		if data == nil {
			data = map[string]any{"message": message}
		}
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Fprintln(ctx.Stdout, string(encoded))
		return nil

	case FormatYAML:
		data := payload
		if data == nil {
			data = map[string]any{"message": message}
		}
		encoded, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Fprint(ctx.Stdout, string(encoded))
		return nil
	}

	if ctx.Flags.Quiet {
		if payload != nil {
			ctx.renderPayload(payload)
		}
		return nil
	}

	fmt.Fprintf(ctx.Stdout, "%s %s\n", SuccessStyle.Render("✔"), message)
	if payload != nil {
		ctx.renderPayload(payload)
	}
	return nil
}

// renderPayload prints payload entries as aligned key/value lines with
// stable (sorted) ordering.
func (ctx *RuntimeContext) renderPayload(payload map[string]any) {
	keys := make([]string, 0, len(payload))
	width := 0
	for key := range payload {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := payload[key]
		rendered := "null"
		if value != nil {
			rendered = fmt.Sprintf("%v", value)
		}
		fmt.Fprintf(ctx.Stdout, "  %s  %s\n",
			DimStyle.Render(fmt.Sprintf("%-*s", width, key)),
			ValueStyle.Render(rendered))
	}
}

// RenderConfig renders the effective configuration.
func (ctx *RuntimeContext) RenderConfig() error {
	return ctx.Render("Effective configuration", ctx.Config.AsMap())
}
