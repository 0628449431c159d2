// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stack

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/site"
)

// AppOptions configures the CDK app.
type AppOptions struct {
	// OutDir is the cloud assembly directory. Empty defers to CDK_OUTDIR,
	// which the CDK CLI sets, or a temporary directory.
	OutDir string

	// StackName defaults to DefaultStackName.
	StackName string

	// Context is added to the app context before any construct reads it.
	Context map[string]any
}

// App wraps a CDK app hosting the site stack.
type App struct {
	app       awscdk.App
	stackName string
}

// NewApp creates the CDK app. The CDK CLI passes context (cdk.json and -c
// flags) through the environment, which the app reads on creation.
func NewApp(opts AppOptions) *App {
	props := &awscdk.AppProps{}
	if opts.OutDir != "" {
		props.Outdir = jsii.String(opts.OutDir)
	}
	if len(opts.Context) > 0 {
		ctx := make(map[string]any, len(opts.Context))
		for k, v := range opts.Context {
			ctx[k] = v
		}
		props.Context = &ctx
	}

	name := opts.StackName
	if name == "" {
		name = DefaultStackName
	}

	return &App{
		app:       awscdk.NewApp(props),
		stackName: name,
	}
}

// ContextLookup reads values from the app's construct context.
func (a *App) ContextLookup() site.ContextLookup {
	return func(key string) any {
		return a.app.Node().TryGetContext(jsii.String(key))
	}
}

// Stack declares the site stack in the app without synthesizing it.
func (a *App) Stack(cfg site.Config) (*SiteStack, error) {
	return NewStack(a.app, a.stackName, cfg)
}

// Synth declares the site stack and synthesizes the cloud assembly.
// Returns the assembly directory.
func (a *App) Synth(cfg site.Config) (dir string, err error) {
	if _, err := a.Stack(cfg); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(errors.ErrCodeInternal, "failed to synthesize cloud assembly", fmt.Errorf("%v", r))
		}
	}()

	asm := a.app.Synth(nil)
	dir = *asm.Directory()

	slog.Info("synthesized cloud assembly",
		"stack", a.stackName,
		"directory", dir,
		"stacks", len(*asm.Stacks()))

	return dir, nil
}
