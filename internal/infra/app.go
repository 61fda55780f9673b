// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/sagectl/sagectl/internal/log"
)

// AppProps parameterizes a synthesis pass.
type AppProps struct {
	// OutDir is where the cloud assembly is written. Empty means the CDK
	// default, cdk.out.
	OutDir   string
	Pipeline PipelineProps
}

// NewApp is the composition root: one app, one pipeline stack, which in
// turn embeds the workspace stack through its Deploy stage.
func NewApp(props AppProps) awscdk.App {
	var appProps *awscdk.AppProps
	if props.OutDir != "" {
		appProps = &awscdk.AppProps{Outdir: jsii.String(props.OutDir)}
	}

	app := awscdk.NewApp(appProps)
	NewPipelineStack(app, "PipelineStack", props.Pipeline)
	return app
}

// Synth builds the graph and writes the cloud assembly. One-shot and
// stateless: identical props yield identical assemblies.
func Synth(props AppProps) string {
	app := NewApp(props)
	assembly := app.Synth(nil)
	dir := *assembly.Directory()
	log.Debugf("assembly written: dir=%s", dir)
	return dir
}
