// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/config"
	"github.com/sagectl/sagectl/internal/infra"
	"github.com/sagectl/sagectl/internal/log"
	"github.com/sagectl/sagectl/internal/meta"
)

func synthCommandBuilder(m meta.Meta) *cli.Command {
	flags := []cli.Flag{NewOutFlag("synth", m.Config.Source)}
	flags = append(flags, NewEnvFlags("synth", m.Config.Source)...)
	flags = append(flags, NewSourceFlags("synth", m.Config.Source)...)

	return (&CommandBuilder{
		Name:      "synth",
		Usage:     "synthesize the workspace and pipeline templates",
		UsageText: "sagectl synth [options]",
		Flags:     flags,
		Action:    synthCommandAction,
		Meta:      m,
	}).Build()
}

// synthCommandAction builds both resource graphs and writes the cloud
// assembly. One-shot: no runtime loop, no network calls.
func synthCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	props := appPropsFromCommand(cmd)
	props.OutDir = ResolveOutDir(cmd)
	log.Debugf("synth props: out=%s account=%s region=%s repo=%s",
		props.OutDir, props.Pipeline.Env.Account, props.Pipeline.Env.Region, props.Pipeline.Repo)

	dir := infra.Synth(props)
	fmt.Fprintf(os.Stdout, "cloud assembly written to %s\n", dir)
	return nil
}

// appPropsFromCommand assembles synthesis props from flags with config
// fallbacks. Fixed resource names (domain, user, registry) come from config
// only; everything else has a flag.
func appPropsFromCommand(cmd *cli.Command) infra.AppProps {
	domainName, _ := config.GetString("workspace.domain", infra.DefaultDomainName)
	userName, _ := config.GetString("workspace.user", infra.DefaultUserName)
	packageGroup, _ := config.GetString("workspace.package_group", infra.DefaultModelPackageGroup)
	trainingName, _ := config.GetString("workspace.training_pipeline", infra.DefaultTrainingPipeline)
	definition, _ := config.GetString("workspace.definition", infra.DefaultDefinitionPath)
	pipelineName, _ := config.GetString("pipeline.name", infra.DefaultPipelineName)

	return infra.AppProps{
		Pipeline: infra.PipelineProps{
			Env: infra.Env{
				Account: cmd.String("account"),
				Region:  cmd.String("region"),
			},
			Repo:       cmd.String("repo"),
			Branch:     cmd.String("branch"),
			SecretName: cmd.String("secret"),
			Name:       pipelineName,
			Workspace: infra.WorkspaceProps{
				DomainName:        domainName,
				UserName:          userName,
				ModelPackageGroup: packageGroup,
				TrainingPipeline:  trainingName,
				DefinitionPath:    definition,
			},
		},
	}
}
