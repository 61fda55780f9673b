// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/sagectl/sagectl/internal/config"
	"github.com/sagectl/sagectl/internal/infra"
	"github.com/sagectl/sagectl/internal/log"
	"github.com/sagectl/sagectl/internal/meta"
	"github.com/sagectl/sagectl/internal/template"
)

func verifyCommandBuilder(m meta.Meta) *cli.Command {
	flags := []cli.Flag{NewOutFlag("verify", m.Config.Source)}
	flags = append(flags, NewRenderFlags()...)

	return (&CommandBuilder{
		Name:      "verify",
		Usage:     "statically check the synthesized templates",
		UsageText: "sagectl verify [options]",
		Flags:     flags,
		Action:    verifyCommandAction,
		Meta:      m,
	}).Build()
}

// verifyCommandAction runs the structural checks against every template in
// the assembly directory. Nothing is deployed; failures exit nonzero.
func verifyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args[1:])

	dir := ResolveOutDir(cmd)

	paths, err := template.Find(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no templates found in %s (run sagectl synth first)", dir)
	}
	log.Debugf("templates found: n=%d dir=%s", len(paths), dir)

	exp := template.Expectations{}
	exp.UserName, _ = config.GetString("workspace.user", infra.DefaultUserName)
	exp.DomainName, _ = config.GetString("workspace.domain", infra.DefaultDomainName)

	failed := 0
	var rows [][]string
	for _, path := range paths {
		doc, err := template.Load(path)
		if err != nil {
			return err
		}

		var checks []template.Check
		kind := doc.Kind()
		switch kind {
		case template.KindWorkspace:
			checks = template.VerifyWorkspace(doc, exp)
		case template.KindPipeline:
			checks = template.VerifyPipeline(doc)
		default:
			log.Tracef("template skipped: path=%s", path)
			continue
		}

		failed += template.Failed(checks)
		fmt.Fprintf(os.Stdout, "%s template %s (%s)\n",
			kind, path, humanize.Bytes(uint64(len(doc.Raw))))
		for _, c := range checks {
			status := "ok"
			if !c.Pass {
				status = "FAIL"
			}
			rows = append(rows, []string{status, kind.String(), c.Name, c.Detail})
		}
	}

	renderChecks(cmd, os.Stdout, rows)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

// renderChecks writes the check rows as a borderless table, optionally with
// colors and column titles.
func renderChecks(cmd *cli.Command, w io.Writer, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	cellStyle := lipgloss.NewStyle()
	if cmd.Bool("color") {
		headerStyle = headerStyle.Foreground(lipgloss.Color("39"))
		cellStyle = cellStyle.Foreground(lipgloss.Color("252"))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2)
			}
			return style
		}).
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("STATUS", "TEMPLATE", "CHECK", "DETAIL").BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}
