// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config implements layered configuration and platform paths for
// keel.
//
// # Precedence
//
// Effective configuration merges three layers, later layers winning:
//
//  1. Built-in defaults
//  2. The TOML config file (default location or --config)
//  3. KEEL__* environment variable overrides
//
// Command-line flags are resolved against the result at a higher layer
// still, but that happens in the cli package, not here.
//
// # Key Types
//
//   - AppConfig: the effective configuration (logging, output, run sections)
//   - Load: builds AppConfig from all layers
//   - WriteDefault: writes the commented default config file
//
// # Paths
//
// Directory resolution follows the XDG base directory spec, with platform
// fallbacks for Windows and macOS. XDG_* variables always win when set and
// support ~ and $VAR expansion. Resolvers take the environment as an explicit
// map and never create directories.
package config
