// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssagemaker"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/sagectl/sagectl/internal/log"
)

// dummyRoleArn matches the placeholder execution role carried by
// pre-generated pipeline definition documents.
var dummyRoleArn = regexp.MustCompile(`arn:aws:iam::\d+:role/service-role/AmazonSageMaker-ExecutionRole-Dummy`)

// dummyBucket is the placeholder bucket name in the same documents. It is
// replaced wherever it appears, with or without an s3:// prefix.
const dummyBucket = "dummy-bucket"

// WorkspaceProps parameterizes the workspace stack. Zero-value fields fall
// back to the compiled-in defaults.
type WorkspaceProps struct {
	Env               Env
	DomainName        string
	UserName          string
	ModelPackageGroup string
	TrainingPipeline  string
	DefinitionPath    string
}

func (p *WorkspaceProps) applyDefaults() {
	if p.Env.Account == "" {
		p.Env.Account = DefaultAccount
	}
	if p.Env.Region == "" {
		p.Env.Region = DefaultRegion
	}
	if p.DomainName == "" {
		p.DomainName = DefaultDomainName
	}
	if p.UserName == "" {
		p.UserName = DefaultUserName
	}
	if p.ModelPackageGroup == "" {
		p.ModelPackageGroup = DefaultModelPackageGroup
	}
	if p.TrainingPipeline == "" {
		p.TrainingPipeline = DefaultTrainingPipeline
	}
	if p.DefinitionPath == "" {
		p.DefinitionPath = DefaultDefinitionPath
	}
}

// Workspace holds the handles other constructs wire against.
type Workspace struct {
	Stack         awscdk.Stack
	Bucket        awss3.Bucket
	ExecutionRole awsiam.Role
	Domain        awssagemaker.CfnDomain
	Profile       awssagemaker.CfnUserProfile
}

// NewWorkspaceStack declares the persistent resource bundle: a versioned,
// encrypted S3 bucket, an execution role scoped to that one bucket, a
// SageMaker domain on the account's default VPC, a single user profile, the
// model package group, and the training pipeline definition.
func NewWorkspaceStack(scope constructs.Construct, id string, props WorkspaceProps) *Workspace {
	props.applyDefaults()
	log.Debugf("workspace stack: id=%s domain=%s user=%s", id, props.DomainName, props.UserName)

	stack := awscdk.NewStack(scope, jsii.String(id), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(props.Env.Account),
			Region:  jsii.String(props.Env.Region),
		},
	})

	bucket := awss3.NewBucket(stack, jsii.String("SageMakerBucket"), &awss3.BucketProps{
		Versioned:  jsii.Bool(true),
		Encryption: awss3.BucketEncryption_S3_MANAGED,
		// Demo posture. A production deployment would retain the bucket.
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	})

	vpc := awsec2.Vpc_FromLookup(stack, jsii.String("DefaultVPC"), &awsec2.VpcLookupOptions{
		IsDefault: jsii.Bool(true),
	})

	var subnetIDs []*string
	for _, subnet := range *vpc.PublicSubnets() {
		subnetIDs = append(subnetIDs, subnet.SubnetId())
	}

	executionRole := awsiam.NewRole(stack, jsii.String("SageMakerRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("sagemaker.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonSageMakerFullAccess")),
		},
	})
	// The read/write grant is scoped to exactly this bucket.
	bucket.GrantReadWrite(executionRole, nil)

	domain := awssagemaker.NewCfnDomain(stack, jsii.String("SageMakerDomain"), &awssagemaker.CfnDomainProps{
		AuthMode: jsii.String("IAM"),
		DefaultUserSettings: &awssagemaker.CfnDomain_UserSettingsProperty{
			ExecutionRole: executionRole.RoleArn(),
		},
		DomainName: jsii.String(props.DomainName),
		SubnetIds:  &subnetIDs,
		VpcId:      vpc.VpcId(),
	})

	profile := awssagemaker.NewCfnUserProfile(stack, jsii.String("DefaultUserProfile"), &awssagemaker.CfnUserProfileProps{
		DomainId:        domain.AttrDomainId(),
		UserProfileName: jsii.String(props.UserName),
		UserSettings: &awssagemaker.CfnUserProfile_UserSettingsProperty{
			ExecutionRole: executionRole.RoleArn(),
		},
	})

	packageGroup := awssagemaker.NewCfnModelPackageGroup(stack, jsii.String("ModelPackageGroup"), &awssagemaker.CfnModelPackageGroupProps{
		ModelPackageGroupName:        jsii.String(props.ModelPackageGroup),
		ModelPackageGroupDescription: jsii.String("Model packages registered by the training pipeline"),
	})

	trainingRole := newTrainingPipelineRole(stack, bucket)

	definition := loadDefinition(props.DefinitionPath, bucket.BucketName(), trainingRole.RoleArn())
	trainingPipeline := awssagemaker.NewCfnPipeline(stack, jsii.String("TrainingPipeline"), &awssagemaker.CfnPipelineProps{
		PipelineName: jsii.String(props.TrainingPipeline),
		PipelineDefinition: map[string]interface{}{
			"PipelineDefinitionBody": definition,
		},
		RoleArn: trainingRole.RoleArn(),
	})
	trainingPipeline.AddDependency(packageGroup)

	awscdk.NewCfnOutput(stack, jsii.String("BucketName"), &awscdk.CfnOutputProps{Value: bucket.BucketName()})
	awscdk.NewCfnOutput(stack, jsii.String("SageMakerDomainId"), &awscdk.CfnOutputProps{Value: domain.AttrDomainId()})
	awscdk.NewCfnOutput(stack, jsii.String("TrainingPipelineName"), &awscdk.CfnOutputProps{Value: trainingPipeline.PipelineName()})
	awscdk.NewCfnOutput(stack, jsii.String("ModelPackageGroupName"), &awscdk.CfnOutputProps{Value: packageGroup.ModelPackageGroupName()})

	return &Workspace{
		Stack:         stack,
		Bucket:        bucket,
		ExecutionRole: executionRole,
		Domain:        domain,
		Profile:       profile,
	}
}

// newTrainingPipelineRole declares the role the SageMaker pipeline executes
// under: full SageMaker access, read/write on the workspace bucket, read on
// the public sample-data bucket and the CDK assets bucket, PassRole on
// itself, and CloudWatch Logs write for processing jobs.
func newTrainingPipelineRole(stack awscdk.Stack, bucket awss3.Bucket) awsiam.Role {
	role := awsiam.NewRole(stack, jsii.String("SageMakerPipelineRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("sagemaker.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonSageMakerFullAccess")),
		},
	})
	bucket.GrantReadWrite(role, nil)

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"s3:GetObject",
			"s3:GetObjectVersion",
			"s3:ListBucket",
			"s3:ListBucketMultipartUploads",
			"s3:ListMultipartUploadParts",
		),
		Resources: jsii.Strings(
			"arn:aws:s3:::sagemaker-sample-files",
			"arn:aws:s3:::sagemaker-sample-files/*",
		),
	}))

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings("s3:GetObject", "s3:ListBucket"),
		Resources: &[]*string{
			jsii.String("arn:aws:s3:::cdk-hnb659fds-assets-" + *stack.Account() + "-" + *stack.Region()),
			jsii.String("arn:aws:s3:::cdk-hnb659fds-assets-" + *stack.Account() + "-" + *stack.Region() + "/*"),
		},
	}))

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("iam:PassRole"),
		Resources: &[]*string{role.RoleArn()},
	}))

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"logs:CreateLogGroup",
			"logs:CreateLogStream",
			"logs:PutLogEvents",
			"logs:DescribeLogStreams",
		),
		Resources: jsii.Strings("*"),
	}))

	return role
}

// loadDefinition reads a pre-generated pipeline definition document and
// rewrites its placeholder role and bucket references to the declared
// resources. Token strings survive substitution and resolve at synth. When
// the document is absent an empty placeholder definition is returned.
func loadDefinition(path string, bucketName *string, roleArn *string) *string {
	body, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("definition missing, using placeholder: path=%s err=%v", path, err)
		placeholder, _ := json.Marshal(map[string]interface{}{
			"Version": "2020-12-01",
			"Steps":   []interface{}{},
		})
		return jsii.String(string(placeholder))
	}

	// Replacements are literal text. CDK token strings contain $ and must
	// not be expanded as group references.
	out := dummyRoleArn.ReplaceAllLiteralString(string(body), *roleArn)
	out = strings.ReplaceAll(out, dummyBucket, *bucketName)
	log.Debugf("definition loaded: path=%s bytes=%d", path, len(body))
	return jsii.String(out)
}
