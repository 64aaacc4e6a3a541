// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// init.go - The init command for keel.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/keel/internal/config"
)

// HandleInit writes the default config file and creates the data and state
// directories. An existing config file is only overwritten after
// confirmation, --force, or --yes.
func HandleInit(ctx *RuntimeContext, args Args) error {
	configPath := ctx.ConfigPath

	if _, err := os.Stat(configPath); err == nil && !args.Force && !ctx.Flags.AssumeYes {
		question := fmt.Sprintf("%s already exists. Overwrite with defaults?", configPath)
		if !ctx.Confirm(question) {
			fmt.Fprintf(ctx.Stderr, "%s existing configuration.\n", WarningStyle.Render("Skipped"))
			return nil
		}
	}

	if ctx.Flags.DryRun {
		ctx.Log.Infof("dry run: would write %s", configPath)
		return ctx.Render("Dry run complete (no changes made)", map[string]any{
			"config_path": configPath,
			"data_dir":    ctx.DataDir,
			"state_dir":   ctx.StateDir,
		})
	}

	if _, err := config.WriteDefault(configPath, true); err != nil {
		return err
	}
	ctx.Log.Debugf("wrote default configuration to %s", configPath)

	for _, dir := range []string{ctx.DataDir, ctx.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return ctx.Render("Initialized configuration and data directories", map[string]any{
		"config_path": configPath,
		"data_dir":    ctx.DataDir,
		"state_dir":   ctx.StateDir,
	})
}
