// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/pipelines"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/sagectl/sagectl/internal/log"
)

// PipelineProps parameterizes the delivery pipeline stack. Zero-value
// fields fall back to the compiled-in defaults.
type PipelineProps struct {
	Env        Env
	Repo       string // owner/name
	Branch     string
	SecretName string
	Name       string
	Workspace  WorkspaceProps
}

func (p *PipelineProps) applyDefaults() {
	if p.Env.Account == "" {
		p.Env.Account = DefaultAccount
	}
	if p.Env.Region == "" {
		p.Env.Region = DefaultRegion
	}
	if p.Repo == "" {
		p.Repo = DefaultRepo
	}
	if p.Branch == "" {
		p.Branch = DefaultBranch
	}
	if p.SecretName == "" {
		p.SecretName = DefaultSecretName
	}
	if p.Name == "" {
		p.Name = DefaultPipelineName
	}
	p.Workspace.Env = p.Env
}

// NewPipelineStack declares the self-mutating delivery pipeline. Stage
// order is fixed: Source watches the branch, Build synthesizes the cloud
// assembly, UpdatePipeline redeploys the pipeline's own definition when it
// changed, and Deploy applies the workspace bundle. Each stage must finish
// before the next starts; CodePipeline owns retries and failure surfacing.
func NewPipelineStack(scope constructs.Construct, id string, props PipelineProps) awscdk.Stack {
	props.applyDefaults()
	log.Debugf("pipeline stack: id=%s repo=%s branch=%s", id, props.Repo, props.Branch)

	stack := awscdk.NewStack(scope, jsii.String(id), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(props.Env.Account),
			Region:  jsii.String(props.Env.Region),
		},
	})

	// Referenced by name only. The token itself lives in Secrets Manager
	// and is never read by this code.
	token := awssecretsmanager.Secret_FromSecretNameV2(stack, jsii.String("GitHubToken"), jsii.String(props.SecretName))

	source := pipelines.CodePipelineSource_GitHub(jsii.String(props.Repo), jsii.String(props.Branch), &pipelines.GitHubSourceOptions{
		Authentication: token.SecretValue(),
	})

	pipeline := pipelines.NewCodePipeline(stack, jsii.String("Pipeline"), &pipelines.CodePipelineProps{
		PipelineName: jsii.String(props.Name),
		SelfMutation: jsii.Bool(true),
		Synth: pipelines.NewShellStep(jsii.String("Synth"), &pipelines.ShellStepProps{
			Input: source,
			Commands: jsii.Strings(
				"npm install -g aws-cdk",
				"go mod download",
				"cdk synth",
			),
			PrimaryOutputDirectory: jsii.String("cdk.out"),
		}),
	})

	deploy := awscdk.NewStage(stack, jsii.String("Deploy"), &awscdk.StageProps{
		Env: &awscdk.Environment{
			Account: jsii.String(props.Env.Account),
			Region:  jsii.String(props.Env.Region),
		},
	})
	NewWorkspaceStack(deploy, "SageMakerS3Stack", props.Workspace)
	pipeline.AddStage(deploy, nil)

	return stack
}
