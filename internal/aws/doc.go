// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws wraps AWS SDK v2 config loading and the S3 client used by
// the status command to check on deployed resources.
package aws
