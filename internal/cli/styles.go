// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Centralized styling for keel output.
//
// All commands render through these shared styles instead of defining their
// own. The active lipgloss color profile is set by the runtime once the
// color policy has been resolved, so styles degrade to plain text when
// colors are off.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// SuccessStyle marks successful operations (the ✔ prefix).
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	// ErrorStyle marks errors and failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// WarningStyle marks warnings and cautions.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// DimStyle is used for payload keys and secondary information.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray

	// ValueStyle is used for payload values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Off-white
)

// ApplyColorPolicy configures the global lipgloss profile for the resolved
// policy. Called once per invocation before any rendering.
func ApplyColorPolicy(policy string) {
	lipgloss.SetColorProfile(ProfileForPolicy(policy))
}
