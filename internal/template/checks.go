// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Check is the outcome of one structural property evaluated against a
// template.
type Check struct {
	Name   string
	Pass   bool
	Detail string
}

// Expectations carries the names the workspace bundle was declared with.
type Expectations struct {
	UserName   string
	DomainName string
}

// VerifyWorkspace evaluates the structural properties of the workspace
// bundle: bucket versioning and encryption, role grant scoped to exactly
// the declared bucket, domain auth mode, and a single fixed-name user
// profile.
func VerifyWorkspace(d *Doc, exp Expectations) []Check {
	var checks []Check

	buckets := d.ResourcesOfType("AWS::S3::Bucket")
	checks = append(checks, Check{
		Name:   "bucket declared",
		Pass:   len(buckets) == 1,
		Detail: fmt.Sprintf("%d bucket(s)", len(buckets)),
	})

	var bucketID string
	for id, bucket := range buckets {
		bucketID = id

		status := bucket.Get("Properties.VersioningConfiguration.Status").String()
		checks = append(checks, Check{
			Name:   "bucket versioning enabled",
			Pass:   status == "Enabled",
			Detail: fmt.Sprintf("status=%q", status),
		})

		sse := bucket.Get("Properties.BucketEncryption.ServerSideEncryptionConfiguration")
		checks = append(checks, Check{
			Name:   "bucket encryption configured",
			Pass:   sse.Exists() && len(sse.Array()) > 0,
			Detail: fmt.Sprintf("%d rule(s)", len(sse.Array())),
		})
	}

	checks = append(checks, checkRoleScope(d, bucketID))

	domains := d.ResourcesOfType("AWS::SageMaker::Domain")
	for _, domain := range domains {
		auth := domain.Get("Properties.AuthMode").String()
		checks = append(checks, Check{
			Name:   "domain auth mode IAM",
			Pass:   auth == "IAM",
			Detail: fmt.Sprintf("auth=%q", auth),
		})
		if exp.DomainName != "" {
			name := domain.Get("Properties.DomainName").String()
			checks = append(checks, Check{
				Name:   "domain name",
				Pass:   name == exp.DomainName,
				Detail: fmt.Sprintf("name=%q", name),
			})
		}
	}

	profiles := d.ResourcesOfType("AWS::SageMaker::UserProfile")
	var profileNames []string
	for _, p := range profiles {
		profileNames = append(profileNames, p.Get("Properties.UserProfileName").String())
	}
	checks = append(checks, Check{
		Name:   "single user profile",
		Pass:   len(profiles) == 1 && (exp.UserName == "" || profileNames[0] == exp.UserName),
		Detail: fmt.Sprintf("profiles=%v", profileNames),
	})

	return checks
}

// checkRoleScope enforces the referential-integrity property: every bucket
// reference inside the stack's IAM policies must point at the one bucket
// declared in the same template.
func checkRoleScope(d *Doc, bucketID string) Check {
	targets := map[string]bool{}
	for _, policy := range d.ResourcesOfType("AWS::IAM::Policy") {
		policy.Get("Properties.PolicyDocument.Statement").ForEach(func(_, stmt gjson.Result) bool {
			if !statementTouchesS3(stmt) {
				return true
			}
			getAttTargets(stmt.Get("Resource"), targets)
			return true
		})
	}

	// Only targets that are bucket-typed resources matter; roles and keys
	// may legitimately appear via GetAtt as well.
	var bucketTargets []string
	for id := range targets {
		if _, ok := d.ResourcesOfType("AWS::S3::Bucket")[id]; ok {
			bucketTargets = append(bucketTargets, id)
		}
	}

	pass := bucketID != "" && len(bucketTargets) == 1 && bucketTargets[0] == bucketID
	return Check{
		Name:   "role grants scoped to declared bucket",
		Pass:   pass,
		Detail: fmt.Sprintf("bucket=%s referenced=%v", bucketID, bucketTargets),
	}
}

// statementTouchesS3 reports whether a policy statement grants any s3
// action.
func statementTouchesS3(stmt gjson.Result) bool {
	actions := stmt.Get("Action")
	if actions.Type == gjson.String {
		return strings.HasPrefix(actions.String(), "s3:")
	}
	for _, a := range actions.Array() {
		if strings.HasPrefix(a.String(), "s3:") {
			return true
		}
	}
	return false
}

// expectedStages is the fixed stage order of the delivery pipeline.
var expectedStages = []string{"Source", "Build", "UpdatePipeline", "Deploy"}

// VerifyPipeline evaluates the delivery pipeline template: exactly four
// stages, in the fixed order Source, Build, UpdatePipeline, Deploy.
func VerifyPipeline(d *Doc) []Check {
	var checks []Check

	pipes := d.ResourcesOfType("AWS::CodePipeline::Pipeline")
	checks = append(checks, Check{
		Name:   "pipeline declared",
		Pass:   len(pipes) == 1,
		Detail: fmt.Sprintf("%d pipeline(s)", len(pipes)),
	})

	for _, pipe := range pipes {
		var names []string
		pipe.Get("Properties.Stages").ForEach(func(_, stage gjson.Result) bool {
			names = append(names, stage.Get("Name").String())
			return true
		})

		ordered := len(names) == len(expectedStages)
		if ordered {
			for i, want := range expectedStages {
				if names[i] != want {
					ordered = false
					break
				}
			}
		}
		checks = append(checks, Check{
			Name:   "four stages in fixed order",
			Pass:   ordered,
			Detail: fmt.Sprintf("stages=%v", names),
		})
	}

	return checks
}

// Failed counts the checks that did not pass.
func Failed(checks []Check) int {
	n := 0
	for _, c := range checks {
		if !c.Pass {
			n++
		}
	}
	return n
}
