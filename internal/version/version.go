// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other sagectl packages to avoid import cycles.

package version

import "runtime/debug"

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()
