// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package template loads synthesized CloudFormation templates from a cloud
// assembly directory and runs structural checks against them without
// deploying anything.
package template
