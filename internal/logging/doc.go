// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the per-invocation log sink for keel.
//
// # Key Types
//
//   - Level: log severity, trace through critical
//   - Options: sink configuration (level, JSON mode, optional file tee)
//   - Sink: the leveled writer itself
//
// The sink writes to stderr by default so that stdout stays reserved for
// command output. When diagnostics mode is on, each record carries the
// caller's file and line.
package logging
