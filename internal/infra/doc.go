// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package infra declares the resource graphs sagectl synthesizes: a
// workspace stack (S3 bucket, SageMaker domain/user profile, execution
// roles, model registry) and a self-mutating CodePipeline stack that
// deploys it. Construction is pure in-memory graph building; nothing here
// talks to AWS.
package infra
