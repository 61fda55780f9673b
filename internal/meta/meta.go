// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"github.com/sagectl/sagectl/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments, loaded configuration, the resolved cloud-assembly output
// directory, and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	OutDir      string
	StartingDir string
}
