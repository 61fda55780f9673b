// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/sagectl/sagectl/internal/log"
	"github.com/sagectl/sagectl/internal/meta"
	"github.com/sagectl/sagectl/internal/template"
)

func diffCommandBuilder(m meta.Meta) *cli.Command {
	flags := []cli.Flag{
		NewOutFlag("diff", m.Config.Source),
		&cli.StringFlag{
			Name:  "kind",
			Usage: "which template to diff: workspace or pipeline",
			Value: "workspace",
			Validator: func(value string) error {
				if value != "workspace" && value != "pipeline" {
					return fmt.Errorf("must be workspace or pipeline")
				}
				return nil
			},
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored diff output",
			Value:   false,
		},
	}

	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare a synthesized template against a baseline",
		UsageText: "sagectl diff [options] BASELINE",
		Flags:     flags,
		Action:    diffCommandAction,
		Meta:      m,
	}).Build()
}

// diffCommandAction compares the selected synthesized template against a
// baseline template file and prints a semantic JSON diff.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	baselinePath := cmd.Args().First()
	if baselinePath == "" {
		return fmt.Errorf("a baseline template file is required")
	}

	baseline, err := os.ReadFile(baselinePath)
	if err != nil {
		return fmt.Errorf("failed to read baseline: %w", err)
	}

	doc, err := findTemplate(ResolveOutDir(cmd), cmd.String("kind"))
	if err != nil {
		return err
	}
	log.Debugf("diffing: baseline=%s (%s) current=%s (%s)",
		baselinePath, humanize.Bytes(uint64(len(baseline))),
		doc.Path, humanize.Bytes(uint64(len(doc.Raw))))

	differ := gojsondiff.New()
	delta, err := differ.Compare(baseline, []byte(doc.Raw))
	if err != nil {
		return fmt.Errorf("failed to compare templates: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(os.Stdout, "The templates are identical.")
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(baseline, &jdoc); err != nil {
		return fmt.Errorf("failed to unmarshal baseline: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       cmd.Bool("color"),
	})
	diffString, err := f.Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, diffString)
	return nil
}

// findTemplate locates the first template of the requested kind in the
// assembly directory.
func findTemplate(dir string, kind string) (*template.Doc, error) {
	paths, err := template.Find(dir)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		doc, err := template.Load(path)
		if err != nil {
			return nil, err
		}
		if doc.Kind().String() == kind {
			return doc, nil
		}
	}

	return nil, fmt.Errorf("no %s template found in %s (run sagectl synth first)", kind, dir)
}
