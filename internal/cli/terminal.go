// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for keel.
//
// These utilities keep behavior sane in different environments:
// - Interactive terminals (full colors, prompts)
// - Piped output (no colors, no prompts)
// - CI environments (respects the resolved color policy)
package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
// Use this to determine if interactive prompts are possible.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY returns true if stderr is a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// =============================================================================
// COLOR PROFILES
// =============================================================================

// ProfileForPolicy maps a resolved color policy to a termenv profile.
// The auto policy uses TTY detection and lets termenv pick the richest
// profile the terminal supports.
func ProfileForPolicy(policy string) termenv.Profile {
	switch policy {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		profile := termenv.ColorProfile()
		if profile == termenv.Ascii {
			return termenv.ANSI
		}
		return profile
	default:
		if !IsStdoutTTY() {
			return termenv.Ascii
		}
		return termenv.ColorProfile()
	}
}
