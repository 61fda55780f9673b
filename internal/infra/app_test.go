// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package infra

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagectl/sagectl/internal/template"
)

func TestDefaultEnv(t *testing.T) {
	env := DefaultEnv()
	assert.Equal(t, "257949588515", env.Account)
	assert.Equal(t, "us-east-1", env.Region)
}

func TestSynthWritesAssembly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cdk.out")

	dir := Synth(AppProps{OutDir: out})
	assert.Equal(t, out, dir)

	paths, err := template.Find(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, paths)

	kinds := map[template.Kind]bool{}
	for _, path := range paths {
		doc, err := template.Load(path)
		require.NoError(t, err)
		kinds[doc.Kind()] = true
	}
	assert.True(t, kinds[template.KindPipeline], "pipeline template missing")
	assert.True(t, kinds[template.KindWorkspace], "workspace template missing")
}

// TestSynthDeterminism synthesizes twice with identical props and expects
// byte-identical templates: no timestamps, no random identifiers.
func TestSynthDeterminism(t *testing.T) {
	outA := filepath.Join(t.TempDir(), "cdk.out")
	outB := filepath.Join(t.TempDir(), "cdk.out")

	Synth(AppProps{OutDir: outA})
	Synth(AppProps{OutDir: outB})

	templatesA := relativeTemplates(t, outA)
	templatesB := relativeTemplates(t, outB)
	require.Equal(t, keys(templatesA), keys(templatesB))

	for rel, raw := range templatesA {
		assert.Equal(t, raw, templatesB[rel], "template %s differs between runs", rel)
	}
}

func relativeTemplates(t *testing.T, dir string) map[string]string {
	t.Helper()

	paths, err := template.Find(dir)
	require.NoError(t, err)

	out := map[string]string{}
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		out[rel] = string(raw)
	}
	return out
}

func keys(m map[string]string) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
