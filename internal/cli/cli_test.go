// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseNoArgsShowsHelp(t *testing.T) {
	cmd, _, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd != CmdHelp {
		t.Errorf("cmd = %v, want CmdHelp", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"run"}, CmdRun},
		{[]string{"init"}, CmdInit},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"completions", "bash"}, CmdCompletions},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
	}

	for _, tt := range tests {
		cmd, _, err := Parse(tt.argv)
		if err != nil {
			t.Errorf("Parse(%v): unexpected error %v", tt.argv, err)
			continue
		}
		if cmd != tt.want {
			t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"frobnicate"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args, err := Parse([]string{
		"--config", "/tmp/keel.toml",
		"-q", "-v", "-v",
		"--json", "--no-color", "--color=always",
		"--dry-run", "-y", "--no-progress", "--diagnostics",
		"--timeout", "30", "--parallel=4",
		"run", "build",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd != CmdRun {
		t.Fatalf("cmd = %v, want CmdRun", cmd)
	}

	f := args.Flags
	if f.ConfigPath != "/tmp/keel.toml" {
		t.Errorf("ConfigPath = %q", f.ConfigPath)
	}
	if !f.Quiet || f.Verbose != 2 || !f.JSONOutput || !f.NoColor {
		t.Errorf("bool/count flags wrong: %+v", f)
	}
	if f.Color != "always" {
		t.Errorf("Color = %q, want always", f.Color)
	}
	if !f.DryRun || !f.AssumeYes || !f.NoProgress || !f.Diagnostics {
		t.Errorf("bool flags wrong: %+v", f)
	}
	if f.TimeoutSeconds == nil || *f.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %v, want 30", f.TimeoutSeconds)
	}
	if f.Parallelism == nil || *f.Parallelism != 4 {
		t.Errorf("Parallelism = %v, want 4", f.Parallelism)
	}
	if args.Task != "build" {
		t.Errorf("Task = %q, want build", args.Task)
	}
}

func TestParseGlobalFlagsAfterCommand(t *testing.T) {
	_, args, err := Parse([]string{"run", "--json", "build"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !args.Flags.JSONOutput {
		t.Error("global flag after command not recognized")
	}
	if args.Task != "build" {
		t.Errorf("Task = %q, want build", args.Task)
	}
}

func TestParseStackedVerbose(t *testing.T) {
	_, args, err := Parse([]string{"-vv", "run"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.Flags.Verbose != 2 {
		t.Errorf("Verbose = %d, want 2", args.Flags.Verbose)
	}
}

func TestParseFlagValueErrors(t *testing.T) {
	tests := [][]string{
		{"--config"},
		{"--timeout"},
		{"--timeout", "soon", "run"},
		{"--timeout", "0", "run"},
		{"--parallel", "-3", "run"},
	}

	for _, argv := range tests {
		_, _, err := Parse(argv)
		if err == nil {
			t.Errorf("Parse(%v): expected usage error", argv)
			continue
		}
		if GetExitCode(err) != ExitUsageError {
			t.Errorf("Parse(%v): exit code = %d, want %d", argv, GetExitCode(err), ExitUsageError)
		}
	}
}

func TestParseRunArgs(t *testing.T) {
	_, args, err := Parse([]string{"run", "deploy", "--profile", "ci"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.Task != "deploy" || args.Profile != "ci" {
		t.Errorf("Task=%q Profile=%q", args.Task, args.Profile)
	}

	_, args, err = Parse([]string{"run", "--profile=staging"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.Task != "" || args.Profile != "staging" {
		t.Errorf("Task=%q Profile=%q", args.Task, args.Profile)
	}

	if _, _, err := Parse([]string{"run", "a", "b"}); err == nil {
		t.Error("expected error for extra run argument")
	}
	if _, _, err := Parse([]string{"run", "--bogus"}); err == nil {
		t.Error("expected error for unknown run flag")
	}
}

func TestParseInitArgs(t *testing.T) {
	_, args, err := Parse([]string{"init", "--force"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !args.Force {
		t.Error("Force not set")
	}

	if _, _, err := Parse([]string{"init", "extra"}); err == nil {
		t.Error("expected error for unexpected init argument")
	}
}

func TestParseConfigArgs(t *testing.T) {
	for _, sub := range []string{"show", "path", "paths", "reset", "schema"} {
		_, args, err := Parse([]string{"config", sub})
		if err != nil {
			t.Errorf("Parse(config %s): %v", sub, err)
			continue
		}
		if args.Subcommand != sub {
			t.Errorf("Subcommand = %q, want %q", args.Subcommand, sub)
		}
	}

	if _, _, err := Parse([]string{"config"}); err == nil {
		t.Error("expected error for missing config subcommand")
	}
	if _, _, err := Parse([]string{"config", "edit"}); err == nil {
		t.Error("expected error for unknown config subcommand")
	}
	if _, _, err := Parse([]string{"config", "show", "extra"}); err == nil {
		t.Error("expected error for extra config argument")
	}
}

func TestParseCompletionsArgs(t *testing.T) {
	for _, shell := range ShellChoices {
		_, args, err := Parse([]string{"completions", shell})
		if err != nil {
			t.Errorf("Parse(completions %s): %v", shell, err)
			continue
		}
		if args.Shell != shell {
			t.Errorf("Shell = %q, want %q", args.Shell, shell)
		}
	}

	// Shell names are case-insensitive.
	_, args, err := Parse([]string{"completions", "BASH"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.Shell != "bash" {
		t.Errorf("Shell = %q, want bash", args.Shell)
	}

	if _, _, err := Parse([]string{"completions"}); err == nil {
		t.Error("expected error for missing shell")
	}
	if _, _, err := Parse([]string{"completions", "tcsh"}); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("nil error exit code = %d", got)
	}
	if got := GetExitCode(NewUsageError("bad")); got != ExitUsageError {
		t.Errorf("usage error exit code = %d", got)
	}
	if got := GetExitCode(&ConfigError{Path: "x", Err: nil}); got != ExitConfigError {
		t.Errorf("config error exit code = %d", got)
	}
}
