// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for snapdiff's user
// configuration. The config file is snapdiff.yaml in the OS-specific user
// config directory:
//   - Linux/macOS: $XDG_CONFIG_HOME/snapdiff.yaml or $HOME/.config/snapdiff.yaml
//   - Windows: %APPDATA%/snapdiff/snapdiff.yaml
//
// The SNAPDIFF_CFG_FILE environment variable overrides the path entirely.
package config
