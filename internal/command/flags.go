// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/infra"
)

// NewOutFlag constructs the --out flag shared by the commands that read or
// write the cloud assembly directory.
func NewOutFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"O"},
		Usage:   "cloud assembly directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_OUT"),
		),
		Value: "cdk.out",
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return flag
}

// NewEnvFlags constructs the --account and --region flags, optionally
// namespaced to a command and config file. params[1] is the config file.
func NewEnvFlags(params ...string) []cli.Flag {
	return []cli.Flag{NewAccountFlag(params...), NewRegionFlag(params...)}
}

// NewAccountFlag constructs the --account flag.
func NewAccountFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "account",
		Usage: "AWS account id to deploy into",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_ACCOUNT"),
		),
		Value: infra.DefaultAccount,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return flag
}

// NewRegionFlag constructs the --region flag.
func NewRegionFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region to deploy into",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
		Value: infra.DefaultRegion,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return flag
}

// NewSourceFlags constructs the --repo, --branch, and --secret flags that
// parameterize the pipeline's Source stage.
func NewSourceFlags(params ...string) []cli.Flag {
	repo := &cli.StringFlag{
		Name:  "repo",
		Usage: "GitHub owner/name the pipeline watches",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_REPO"),
		),
		Value: infra.DefaultRepo,
	}
	branch := &cli.StringFlag{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "branch the pipeline watches",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_BRANCH"),
		),
		Value: infra.DefaultBranch,
	}
	secret := &cli.StringFlag{
		Name:  "secret",
		Usage: "Secrets Manager entry holding the GitHub token (name only, never read)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SAGECTL_SECRET"),
		),
		Value: infra.DefaultSecretName,
	}

	if len(params) == 2 {
		repo = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], repo)
		branch = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], branch)
		secret = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], secret)
	}

	return []cli.Flag{repo, branch, secret}
}

// NewRenderFlags constructs the flags controlling tabular output.
func NewRenderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
