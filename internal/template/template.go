// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/sagectl/sagectl/internal/log"
)

// Kind classifies a template by the resources it declares.
type Kind int

const (
	KindOther Kind = iota
	KindWorkspace
	KindPipeline
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	case KindPipeline:
		return "pipeline"
	default:
		return "other"
	}
}

// Doc is one loaded CloudFormation template.
type Doc struct {
	Path string
	Raw  string
}

// Load reads a template document from disk.
func Load(path string) (*Doc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("not a JSON document: %s", path)
	}
	log.Tracef("template loaded: path=%s bytes=%d", path, len(raw))
	return &Doc{Path: path, Raw: string(raw)}, nil
}

// Find walks an assembly directory and returns the paths of every
// *.template.json beneath it, sorted for stable output. Nested assemblies
// (pipeline stages) are included.
func Find(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".template.json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk assembly %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Kind classifies the document. A template carrying a SageMaker domain is
// the workspace bundle; one carrying a CodePipeline is the delivery
// pipeline.
func (d *Doc) Kind() Kind {
	if len(d.ResourcesOfType("AWS::SageMaker::Domain")) > 0 {
		return KindWorkspace
	}
	if len(d.ResourcesOfType("AWS::CodePipeline::Pipeline")) > 0 {
		return KindPipeline
	}
	return KindOther
}

// ResourcesOfType returns logical id -> resource body for every resource of
// the given CloudFormation type.
func (d *Doc) ResourcesOfType(cfnType string) map[string]gjson.Result {
	found := map[string]gjson.Result{}
	gjson.Get(d.Raw, "Resources").ForEach(func(key, value gjson.Result) bool {
		if value.Get("Type").String() == cfnType {
			found[key.String()] = value
		}
		return true
	})
	return found
}

var pathSegment = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)\])?$`)

// At navigates the document using a dot path where segments may carry an
// array index, e.g. "Resources.Pipeline.Properties.Stages[2].Name".
func (d *Doc) At(path string) gjson.Result {
	current := gjson.Parse(d.Raw)

	for _, p := range strings.Split(path, ".") {
		matches := pathSegment.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{} // Invalid path segment
		}

		current = current.Get(matches[1])
		if matches[3] != "" {
			i, err := strconv.Atoi(matches[3])
			if err != nil || !current.IsArray() || i >= len(current.Array()) {
				return gjson.Result{}
			}
			current = current.Array()[i]
		}
	}

	return current
}

// getAttTargets walks a JSON fragment and collects the logical ids named by
// every Fn::GetAtt it contains.
func getAttTargets(value gjson.Result, into map[string]bool) {
	if value.IsObject() {
		value.ForEach(func(key, child gjson.Result) bool {
			if key.String() == "Fn::GetAtt" && child.IsArray() {
				arr := child.Array()
				if len(arr) > 0 {
					into[arr[0].String()] = true
				}
				return true
			}
			getAttTargets(child, into)
			return true
		})
		return
	}
	if value.IsArray() {
		for _, child := range value.Array() {
			getAttTargets(child, into)
		}
	}
}
