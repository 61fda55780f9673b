// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/aws"
	"github.com/sagectl/sagectl/internal/log"
	"github.com/sagectl/sagectl/internal/meta"
)

func statusCommandBuilder(m meta.Meta) *cli.Command {
	flags := []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile("status", m.Config.Source, &cli.StringFlag{
			Name:  "bucket",
			Usage: "name of the deployed workspace bucket",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SAGECTL_BUCKET"),
			),
		}),
		&cli.StringFlag{
			Name:  "profile",
			Usage: "AWS shared config profile. Defaults to the AWS_PROFILE/env chain",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
			),
		},
	}
	// status only needs a region; the account is implied by the caller's
	// credentials.
	flags = append(flags, NewRegionFlag("status", m.Config.Source))

	return (&CommandBuilder{
		Name:      "status",
		Usage:     "check that the deployed workspace bucket is reachable",
		UsageText: "sagectl status --bucket NAME [options]",
		Flags:     flags,
		Action:    statusCommandAction,
		Meta:      m,
	}).Build()
}

// statusCommandAction heads the deployed bucket with the shell's AWS
// credentials. This is the only command that talks to AWS.
func statusCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	bucket := cmd.String("bucket")
	if bucket == "" {
		return fmt.Errorf("a bucket name is required (--bucket, SAGECTL_BUCKET, or status.bucket in config)")
	}

	cfg, err := aws.LoadConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := aws.NewS3(cfg)
	if err := aws.HeadBucket(ctx, client, bucket); err != nil {
		log.Debugf("head bucket err: err=%v", err)
		return err
	}

	fmt.Fprintf(os.Stdout, "bucket %s is reachable\n", bucket)
	return nil
}
