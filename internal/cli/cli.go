// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for keel.
//
// Global flags may appear anywhere on the command line; the first
// non-flag argument selects the command. Parsing never touches the
// filesystem, so usage errors always surface before any side effects.
package cli

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdRun Command = iota
	CmdInit
	CmdConfig
	CmdCompletions
	CmdVersion
	CmdHelp
)

// ShellChoices lists the shells completions can be generated for.
var ShellChoices = []string{"bash", "zsh", "fish", "powershell", "elvish"}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Flags CommonFlags

	// Command-specific
	Task       string // run: optional task name
	Profile    string // run: --profile override
	Force      bool   // init: --force
	Subcommand string // config: show, path, paths, reset, schema
	Shell      string // completions: target shell
}

const usageText = `keel - opinionated starting point for cross-platform CLIs

Keel wires up the plumbing every well-behaved command-line tool needs:
layered TOML configuration, environment overrides, platform directories,
leveled logging, and machine-readable output.

Usage:
  keel run [TASK]            Execute a task (default task from config)
    --profile NAME           Override the profile to run under
  keel init                  Create the default config and data directories
    --force                  Recreate configuration even if it already exists
  keel config show           Show the effective configuration
  keel config path           Print the config file path
  keel config paths          Print all resolved directories
  keel config reset          Regenerate the default configuration
  keel config schema         Print the configuration JSON schema
  keel completions SHELL     Generate shell completions (bash, zsh, fish,
                             powershell, elvish)
  keel version               Show version information
  keel help                  Show this help

Global Flags:
  --config PATH   Override the config file path
  -q, --quiet     Reduce output to only errors
  -v, --verbose   Increase logging verbosity (stackable)
  --debug         Enable debug logging (equivalent to -vv)
  --trace         Enable trace logging (overrides other levels)
  --json          Output machine-readable JSON
  --yaml          Output machine-readable YAML
  --no-color      Disable ANSI colors in output
  --color POLICY  Color output policy: auto, always, or never
  --dry-run       Do not change anything on disk
  -y, --yes       Assume yes for interactive prompts
  --no-progress   Disable progress indicators
  --diagnostics   Emit additional diagnostics for troubleshooting
  --timeout N     Maximum seconds to allow an operation to run
  --parallel N    Override the degree of parallelism
  --version       Show the keel version and exit

Configuration:
  Layers merge in order: defaults, then the config file, then KEEL__*
  environment variables (double underscores nest, e.g.
  KEEL__LOGGING__LEVEL=debug), then flags.

Examples:
  keel run build --profile ci        Run the build task under the ci profile
  keel --json config show            Effective config as JSON
  keel -vv run                       Run the default task with debug logging
  KEEL__RUN__PROFILE=staging keel run
                                     Override the profile via environment

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("keel version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments (without the program name) and returns
// the command and args. Usage problems return a *UsageError.
func Parse(argv []string) (Command, Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, args, err
	}

	if len(remaining) == 0 {
		return CmdHelp, args, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]

	switch cmd {
	case "run":
		if err := parseRunArgs(&args, remaining); err != nil {
			return CmdRun, args, err
		}
		return CmdRun, args, nil

	case "init":
		if err := parseInitArgs(&args, remaining); err != nil {
			return CmdInit, args, err
		}
		return CmdInit, args, nil

	case "config":
		if err := parseConfigArgs(&args, remaining); err != nil {
			return CmdConfig, args, err
		}
		return CmdConfig, args, nil

	case "completions":
		if err := parseCompletionsArgs(&args, remaining); err != nil {
			return CmdCompletions, args, err
		}
		return CmdCompletions, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, NewUsageError("unknown command: %s (see 'keel help')", cmd)
	}
}

// parseGlobalFlags extracts global flags from argv and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var remaining []string
	args := Args{Flags: DefaultFlags()}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch arg {
		case "-q", "--quiet":
			args.Flags.Quiet = true
		case "-v", "--verbose":
			args.Flags.Verbose++
		case "-vv":
			args.Flags.Verbose += 2
		case "-vvv":
			args.Flags.Verbose += 3
		case "--debug":
			args.Flags.Debug = true
		case "--trace":
			args.Flags.Trace = true
		case "--json":
			args.Flags.JSONOutput = true
		case "--yaml":
			args.Flags.YAMLOutput = true
		case "--no-color":
			args.Flags.NoColor = true
		case "--dry-run":
			args.Flags.DryRun = true
		case "-y", "--yes":
			args.Flags.AssumeYes = true
		case "--no-progress":
			args.Flags.NoProgress = true
		case "--diagnostics":
			args.Flags.Diagnostics = true
		case "--version":
			remaining = append([]string{"version"}, remaining...)
		case "-h", "--help":
			remaining = append([]string{"help"}, remaining...)
		case "--config":
			value, next, err := flagValue(argv, i, "--config")
			if err != nil {
				return nil, args, err
			}
			args.Flags.ConfigPath = value
			i = next
		case "--color":
			value, next, err := flagValue(argv, i, "--color")
			if err != nil {
				return nil, args, err
			}
			args.Flags.Color = strings.ToLower(value)
			i = next
		case "--timeout":
			value, next, err := flagValue(argv, i, "--timeout")
			if err != nil {
				return nil, args, err
			}
			n, err := positiveInt("--timeout", value)
			if err != nil {
				return nil, args, err
			}
			args.Flags.TimeoutSeconds = &n
			i = next
		case "--parallel":
			value, next, err := flagValue(argv, i, "--parallel")
			if err != nil {
				return nil, args, err
			}
			n, err := positiveInt("--parallel", value)
			if err != nil {
				return nil, args, err
			}
			args.Flags.Parallelism = &n
			i = next
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				args.Flags.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--color="):
				args.Flags.Color = strings.ToLower(strings.TrimPrefix(arg, "--color="))
			case strings.HasPrefix(arg, "--timeout="):
				n, err := positiveInt("--timeout", strings.TrimPrefix(arg, "--timeout="))
				if err != nil {
					return nil, args, err
				}
				args.Flags.TimeoutSeconds = &n
			case strings.HasPrefix(arg, "--parallel="):
				n, err := positiveInt("--parallel", strings.TrimPrefix(arg, "--parallel="))
				if err != nil {
					return nil, args, err
				}
				args.Flags.Parallelism = &n
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, args, nil
}

// flagValue returns the value following a flag and the index it consumed.
func flagValue(argv []string, i int, flag string) (string, int, error) {
	if i+1 >= len(argv) {
		return "", i, NewUsageError("%s requires a value", flag)
	}
	return argv[i+1], i + 1, nil
}

func positiveInt(flag, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewUsageError("%s expects an integer, got %q", flag, value)
	}
	if n < 1 {
		return 0, NewUsageError("%s must be at least 1, got %d", flag, n)
	}
	return n, nil
}

// parseRunArgs parses run command specific arguments.
func parseRunArgs(args *Args, remaining []string) error {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch {
		case arg == "--profile":
			if i+1 >= len(remaining) {
				return NewUsageError("--profile requires a value")
			}
			i++
			args.Profile = remaining[i]
		case strings.HasPrefix(arg, "--profile="):
			args.Profile = strings.TrimPrefix(arg, "--profile=")
		case strings.HasPrefix(arg, "-"):
			return NewUsageError("unknown flag for run: %s", arg)
		case args.Task == "":
			args.Task = arg
		default:
			return NewUsageError("run accepts at most one task argument, got %q", arg)
		}
	}
	return nil
}

// parseInitArgs parses init command specific arguments.
func parseInitArgs(args *Args, remaining []string) error {
	for _, arg := range remaining {
		switch arg {
		case "--force":
			args.Force = true
		default:
			return NewUsageError("unknown argument for init: %s", arg)
		}
	}
	return nil
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) error {
	if len(remaining) == 0 {
		return NewUsageError("config requires a subcommand: show, path, paths, reset, schema")
	}

	sub := strings.ToLower(remaining[0])
	switch sub {
	case "show", "path", "paths", "reset", "schema":
		args.Subcommand = sub
	default:
		return NewUsageError("unknown config subcommand: %s (expected show, path, paths, reset, schema)", sub)
	}

	if len(remaining) > 1 {
		return NewUsageError("config %s takes no arguments, got %q", sub, remaining[1])
	}
	return nil
}

// parseCompletionsArgs parses completions command specific arguments.
func parseCompletionsArgs(args *Args, remaining []string) error {
	if len(remaining) == 0 {
		return NewUsageError("completions requires a shell argument (%s)", strings.Join(ShellChoices, ", "))
	}

	shell := strings.ToLower(remaining[0])
	for _, choice := range ShellChoices {
		if shell == choice {
			args.Shell = shell
			return nil
		}
	}
	return NewUsageError("unsupported shell: %s (choose from %s)", shell, strings.Join(ShellChoices, ", "))
}
