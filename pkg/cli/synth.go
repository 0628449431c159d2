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

package cli

import (
	"context"
	"log/slog"

	"github.com/aws/jsii-runtime-go"
	"github.com/urfave/cli/v3"

	"github.com/mchmarny/sitestack/pkg/stack"
)

func synthCmd() *cli.Command {
	return &cli.Command{
		Name:  "synth",
		Usage: "Synthesize the site stack into a cloud assembly.",
		Description: `Declares the static site stack and writes the CloudFormation cloud
assembly. This is the app command the CDK CLI runs (see cdk.json), so
"cdk synth" and "cdk deploy" pass CDK context and CDK_OUTDIR through.

Examples:

  cdk deploy -c domain=example.com -c subdomain=www
  sitestack synth --domain example.com --subdomain www --out cdk.out`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Usage:   "Cloud assembly directory (default: CDK_OUTDIR or a temporary directory)",
				Sources: cli.EnvVars("CDK_OUTDIR"),
			},
			&cli.StringFlag{
				Name:  "stack-name",
				Value: stack.DefaultStackName,
				Usage: "Name of the declared stack",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			defer jsii.Close()

			app := stack.NewApp(stack.AppOptions{
				OutDir:    cmd.String("out"),
				StackName: cmd.String("stack-name"),
			})

			cfg, err := resolveConfig(cmd, app.ContextLookup())
			if err != nil {
				return err
			}

			dir, err := app.Synth(cfg)
			if err != nil {
				return err
			}

			slog.Debug("synth complete", "siteDomain", cfg.SiteDomain(), "directory", dir)
			return nil
		},
	}
}
