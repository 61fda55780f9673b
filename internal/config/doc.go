// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for sagectl's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/sagectl.yaml or $HOME/.config/sagectl.yaml
//   - Windows: %APPDATA%/sagectl/sagectl.yaml
//
// SAGECTL_CFG_FILE overrides the path outright. Actual resolution relies on
// os.UserConfigDir which follows platform conventions.
package config
