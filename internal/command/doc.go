// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the sagectl CLI: synth builds and emits the
// resource graphs, verify runs structural checks on the emitted templates,
// diff compares a template against a baseline, and status checks deployed
// resources.
package command
