// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullWorkspaceFixture = `{
  "Resources": {
    "SageMakerBucket0123ABCD": {
      "Type": "AWS::S3::Bucket",
      "Properties": {
        "VersioningConfiguration": {"Status": "Enabled"},
        "BucketEncryption": {
          "ServerSideEncryptionConfiguration": [
            {"ServerSideEncryptionByDefault": {"SSEAlgorithm": "AES256"}}
          ]
        }
      }
    },
    "SageMakerRoleDefaultPolicy1111": {
      "Type": "AWS::IAM::Policy",
      "Properties": {
        "PolicyDocument": {
          "Statement": [
            {
              "Action": ["s3:GetObject*", "s3:PutObject", "s3:List*"],
              "Effect": "Allow",
              "Resource": [
                {"Fn::GetAtt": ["SageMakerBucket0123ABCD", "Arn"]},
                {"Fn::Join": ["", [{"Fn::GetAtt": ["SageMakerBucket0123ABCD", "Arn"]}, "/*"]]}
              ]
            },
            {
              "Action": "iam:PassRole",
              "Effect": "Allow",
              "Resource": {"Fn::GetAtt": ["SageMakerPipelineRole2222", "Arn"]}
            }
          ]
        }
      }
    },
    "SageMakerPipelineRole2222": {"Type": "AWS::IAM::Role", "Properties": {}},
    "SageMakerDomainABCD1234": {
      "Type": "AWS::SageMaker::Domain",
      "Properties": {"AuthMode": "IAM", "DomainName": "my-sagemaker-domain"}
    },
    "DefaultUserProfile5678": {
      "Type": "AWS::SageMaker::UserProfile",
      "Properties": {"UserProfileName": "default-user"}
    }
  }
}`

func checkByName(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in %v", name, checks)
	return Check{}
}

func TestVerifyWorkspace(t *testing.T) {
	doc := &Doc{Raw: fullWorkspaceFixture}
	checks := VerifyWorkspace(doc, Expectations{
		UserName:   "default-user",
		DomainName: "my-sagemaker-domain",
	})

	assert.Zero(t, Failed(checks), "all checks expected to pass: %+v", checks)

	for _, name := range []string{
		"bucket declared",
		"bucket versioning enabled",
		"bucket encryption configured",
		"role grants scoped to declared bucket",
		"domain auth mode IAM",
		"domain name",
		"single user profile",
	} {
		assert.True(t, checkByName(t, checks, name).Pass, name)
	}
}

func TestVerifyWorkspaceVersioningDisabled(t *testing.T) {
	raw := `{
	  "Resources": {
	    "B": {"Type": "AWS::S3::Bucket", "Properties": {}}
	  }
	}`

	checks := VerifyWorkspace(&Doc{Raw: raw}, Expectations{})
	assert.False(t, checkByName(t, checks, "bucket versioning enabled").Pass)
	assert.False(t, checkByName(t, checks, "bucket encryption configured").Pass)
}

func TestVerifyWorkspaceForeignBucketReference(t *testing.T) {
	// A policy statement reaching a second bucket violates the
	// least-privilege property.
	raw := `{
	  "Resources": {
	    "B1": {
	      "Type": "AWS::S3::Bucket",
	      "Properties": {"VersioningConfiguration": {"Status": "Enabled"}}
	    },
	    "B2": {"Type": "AWS::S3::Bucket", "Properties": {}},
	    "P": {
	      "Type": "AWS::IAM::Policy",
	      "Properties": {
	        "PolicyDocument": {
	          "Statement": [
	            {
	              "Action": ["s3:GetObject"],
	              "Resource": [
	                {"Fn::GetAtt": ["B1", "Arn"]},
	                {"Fn::GetAtt": ["B2", "Arn"]}
	              ]
	            }
	          ]
	        }
	      }
	    }
	  }
	}`

	checks := VerifyWorkspace(&Doc{Raw: raw}, Expectations{})
	assert.False(t, checkByName(t, checks, "bucket declared").Pass)
	assert.False(t, checkByName(t, checks, "role grants scoped to declared bucket").Pass)
}

func TestVerifyWorkspaceWrongUserName(t *testing.T) {
	checks := VerifyWorkspace(&Doc{Raw: fullWorkspaceFixture}, Expectations{UserName: "someone-else"})
	assert.False(t, checkByName(t, checks, "single user profile").Pass)
}

func TestVerifyPipeline(t *testing.T) {
	tests := []struct {
		name   string
		stages []string
		pass   bool
	}{
		{
			name:   "fixed order",
			stages: []string{"Source", "Build", "UpdatePipeline", "Deploy"},
			pass:   true,
		},
		{
			name:   "deploy before self-mutation",
			stages: []string{"Source", "Build", "Deploy", "UpdatePipeline"},
			pass:   false,
		},
		{
			name:   "missing self-mutation stage",
			stages: []string{"Source", "Build", "Deploy"},
			pass:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"Resources": {"P": {"Type": "AWS::CodePipeline::Pipeline", "Properties": {"Stages": [`
			for i, s := range tt.stages {
				if i > 0 {
					raw += ","
				}
				raw += `{"Name": "` + s + `"}`
			}
			raw += `]}}}}`

			checks := VerifyPipeline(&Doc{Raw: raw})
			require.True(t, checkByName(t, checks, "pipeline declared").Pass)
			assert.Equal(t, tt.pass, checkByName(t, checks, "four stages in fixed order").Pass)
		})
	}
}

func TestFailed(t *testing.T) {
	checks := []Check{
		{Name: "a", Pass: true},
		{Name: "b", Pass: false},
		{Name: "c", Pass: false},
	}
	assert.Equal(t, 2, Failed(checks))
	assert.Zero(t, Failed(nil))
}
