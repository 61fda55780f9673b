// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/meta"
)

// CommandBuilder constructs a cli.Command for sagectl subcommands using a
// consistent pattern: it wires the shared Meta into the command's metadata
// and appends the command-specific flags.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:  cb.Flags,
		Action: cb.Action,
	}
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If
// missing or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ResolveOutDir returns the command's cloud-assembly directory: the --out
// flag value, made absolute against the starting working directory. The
// resolved path is stored back into the shared Meta.
func ResolveOutDir(cmd *cli.Command) string {
	m := GetMeta(cmd)

	dir := cmd.String("out")
	if !filepath.IsAbs(dir) && m.StartingDir != "" {
		dir = filepath.Join(m.StartingDir, dir)
	}

	m.OutDir = dir
	if cmd.Metadata != nil {
		cmd.Metadata["meta"] = m
	}

	return m.OutDir
}
