// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package infra

// Compiled-in defaults. Every one of these can be overridden through
// sagectl.yaml or a flag, but a naked `sagectl` run needs no configuration
// at all.
const (
	DefaultAccount = "257949588515"
	DefaultRegion  = "us-east-1"

	DefaultDomainName = "my-sagemaker-domain"
	DefaultUserName   = "default-user"

	DefaultRepo       = "sagectl/sagectl"
	DefaultBranch     = "main"
	DefaultSecretName = "github-token"

	DefaultPipelineName      = "SageMakerS3Pipeline"
	DefaultModelPackageGroup = "AbalonePackageGroup"
	DefaultTrainingPipeline  = "AbalonePipeline"

	// Relative path checked for a pre-generated SageMaker pipeline
	// definition document. A placeholder definition is declared when the
	// file is absent so a fresh checkout still synthesizes.
	DefaultDefinitionPath = "model/pipeline_definition.json"
)

// Env identifies the AWS account and region a stack deploys to.
type Env struct {
	Account string
	Region  string
}

// DefaultEnv returns the compiled-in deployment target.
func DefaultEnv() Env {
	return Env{Account: DefaultAccount, Region: DefaultRegion}
}
