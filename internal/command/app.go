// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/config"
	"github.com/sagectl/sagectl/internal/meta"
)

// InitApp builds the sagectl CLI. The arg immediately following the binary
// is the subcommand and also the namespace key used when retrieving config
// values; it could be -h/--help, so it is ignored if it appears to be a
// flag.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns) //nolint
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "sagectl",
		Usage: "SageMaker workspace infrastructure control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "sagectl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		synthCommandBuilder(m),
		verifyCommandBuilder(m),
		diffCommandBuilder(m),
		statusCommandBuilder(m),
	)

	return app, nil
}
