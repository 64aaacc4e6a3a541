// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// configcmd.go - The config command and its subcommands for keel.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/keel/internal/config"
)

// HandleConfig dispatches a config subcommand. The subcommand has already
// been validated by the parser.
func HandleConfig(ctx *RuntimeContext, args Args) error {
	switch args.Subcommand {
	case "show":
		return ctx.RenderConfig()
	case "path":
		return handleConfigPath(ctx)
	case "paths":
		return handleConfigPaths(ctx)
	case "reset":
		return handleConfigReset(ctx)
	case "schema":
		return handleConfigSchema(ctx)
	default:
		return NewUsageError("unknown config subcommand: %s", args.Subcommand)
	}
}

// handleConfigPath prints the config file location. Human output is the bare
// path so it composes with shell substitution.
func handleConfigPath(ctx *RuntimeContext) error {
	if ctx.OutputFormat != FormatHuman {
		return ctx.Render("Config path", map[string]any{"config_path": ctx.ConfigPath})
	}
	fmt.Fprintln(ctx.Stdout, ctx.ConfigPath)
	return nil
}

func handleConfigPaths(ctx *RuntimeContext) error {
	if ctx.OutputFormat != FormatHuman {
		return ctx.Render("Paths", map[string]any{
			"config": ctx.ConfigPath,
			"data":   ctx.DataDir,
			"state":  ctx.StateDir,
			"cache":  ctx.CacheDir,
		})
	}

	fmt.Fprintf(ctx.Stdout, "config: %s\n", ctx.ConfigPath)
	fmt.Fprintf(ctx.Stdout, "data:   %s\n", ctx.DataDir)
	fmt.Fprintf(ctx.Stdout, "state:  %s\n", ctx.StateDir)
	fmt.Fprintf(ctx.Stdout, "cache:  %s\n", ctx.CacheDir)
	return nil
}

// handleConfigReset regenerates the default config file and reloads the
// effective configuration so this invocation reflects it.
func handleConfigReset(ctx *RuntimeContext) error {
	if ctx.Flags.DryRun {
		ctx.Log.Infof("dry run: would reset %s", ctx.ConfigPath)
		return ctx.Render("Dry run complete (no changes made)", map[string]any{
			"config_path": ctx.ConfigPath,
		})
	}

	if _, err := config.WriteDefault(ctx.ConfigPath, true); err != nil {
		return err
	}

	refreshed, _, err := config.Load(ctx.ConfigPath, ctx.Env)
	if err != nil {
		return &ConfigError{Path: ctx.ConfigPath, Err: err}
	}
	ctx.Config = refreshed

	return ctx.Render("Regenerated default configuration", map[string]any{
		"config_path": ctx.ConfigPath,
	})
}

// handleConfigSchema prints the bundled JSON schema for the config file.
// A missing schema asset degrades to a warning rather than a failure.
func handleConfigSchema(ctx *RuntimeContext) error {
	for _, path := range schemaSearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fmt.Fprint(ctx.Stdout, string(data))
		return nil
	}

	ctx.Log.Warnf("config.schema.json not found")
	fmt.Fprintf(ctx.Stderr, "%s config.schema.json not found\n", WarningStyle.Render("Warning:"))
	return nil
}

// schemaSearchPaths lists candidate locations for the schema asset: next to
// the executable, then the working directory.
func schemaSearchPaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "docs", "config.schema.json"))
	}
	paths = append(paths, filepath.Join("docs", "config.schema.json"))
	return paths
}
