// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workspaceFixture = `{
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
    "SageMakerDomainABCD1234": {
      "Type": "AWS::SageMaker::Domain",
      "Properties": {"AuthMode": "IAM", "DomainName": "my-sagemaker-domain"}
    }
  }
}`

const pipelineFixture = `{
  "Resources": {
    "PipelineAB12CD34": {
      "Type": "AWS::CodePipeline::Pipeline",
      "Properties": {
        "Stages": [
          {"Name": "Source"},
          {"Name": "Build"},
          {"Name": "UpdatePipeline"},
          {"Name": "Deploy"}
        ]
      }
    }
  }
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "stack.template.json")
	require.NoError(t, os.WriteFile(good, []byte(workspaceFixture), 0o600))

	doc, err := Load(good)
	require.NoError(t, err)
	assert.Equal(t, good, doc.Path)

	bad := filepath.Join(dir, "bad.template.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json {"), 0o600))

	_, err = Load(bad)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.template.json"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "assembly-PipelineStack-Deploy")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	files := []string{
		filepath.Join(dir, "PipelineStack.template.json"),
		filepath.Join(nested, "DeploySageMakerS3Stack.template.json"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("{}"), 0o600))
	}
	// Non-template files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o600))

	found, err := Find(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, files, found)
}

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Kind
	}{
		{
			name:     "workspace",
			raw:      workspaceFixture,
			expected: KindWorkspace,
		},
		{
			name:     "pipeline",
			raw:      pipelineFixture,
			expected: KindPipeline,
		},
		{
			name:     "other",
			raw:      `{"Resources": {}}`,
			expected: KindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Doc{Raw: tt.raw}
			assert.Equal(t, tt.expected, doc.Kind())
		})
	}
}

func TestAt(t *testing.T) {
	doc := &Doc{Raw: pipelineFixture}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "indexed stage name",
			path:     "Resources.PipelineAB12CD34.Properties.Stages[2].Name",
			expected: "UpdatePipeline",
		},
		{
			name:     "first stage",
			path:     "Resources.PipelineAB12CD34.Properties.Stages[0].Name",
			expected: "Source",
		},
		{
			name:     "plain path",
			path:     "Resources.PipelineAB12CD34.Type",
			expected: "AWS::CodePipeline::Pipeline",
		},
		{
			name: "index out of range",
			path: "Resources.PipelineAB12CD34.Properties.Stages[9].Name",
		},
		{
			name: "invalid segment",
			path: "Resources..Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, doc.At(tt.path).String())
		})
	}
}

func TestResourcesOfType(t *testing.T) {
	doc := &Doc{Raw: workspaceFixture}

	buckets := doc.ResourcesOfType("AWS::S3::Bucket")
	require.Len(t, buckets, 1)
	assert.Contains(t, buckets, "SageMakerBucket0123ABCD")

	assert.Empty(t, doc.ResourcesOfType("AWS::Lambda::Function"))
}
