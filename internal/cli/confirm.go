// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Interactive confirmation handling for keel.
//
// One pattern for every destructive action:
//  1. If --yes (or a command's --force) was passed, proceed without prompting
//  2. If stdin is not a TTY or output is machine-readable, do not prompt;
//     the caller treats this as declined
//  3. Otherwise show an interactive [y/N] prompt
package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// Confirm asks the user to confirm an action. The default answer is no:
// empty input, EOF, and anything other than y/yes declines.
func (ctx *RuntimeContext) Confirm(question string) bool {
	if ctx.Flags.AssumeYes {
		return true
	}
	if !IsTTY() || ctx.OutputFormat != FormatHuman {
		return false
	}

	fmt.Fprintf(ctx.Stderr, "%s [y/N]: ", question)

	reader := bufio.NewReader(ctx.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
