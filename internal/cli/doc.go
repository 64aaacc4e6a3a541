// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing, the runtime context, and the
// command handlers for keel.
//
// # Key Types
//
//   - Command: the command selected by Parse
//   - Args: parsed global flags plus command-specific arguments
//   - CommonFlags: global flags and their config resolvers
//   - RuntimeContext: per-invocation state handed to every handler
//
// # Flow
//
// main calls Parse, builds a RuntimeContext with NewRuntime, and dispatches
// to a Handle* function. Handlers return errors; GetExitCode maps them to
// process exit codes (2 for usage, 3 for malformed config, 1 otherwise).
//
// Output goes to stdout through RuntimeContext.Render in the resolved format
// (human, JSON, or YAML). Logs go to stderr through the logging sink, so
// piped output stays clean.
package cli
