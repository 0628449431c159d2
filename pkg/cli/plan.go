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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/sitestack/pkg/header"
	"github.com/mchmarny/sitestack/pkg/plan"
	"github.com/mchmarny/sitestack/pkg/serializer"
	"github.com/mchmarny/sitestack/pkg/site"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Describe the resources the site stack declares.",
		Description: `Prints the resolved site settings and the declared resources in
dependency order. Nothing is synthesized and no AWS API is called.

CDK context is read from CDK_CONTEXT_JSON when it is set.

Examples:

  sitestack plan --domain example.com --subdomain www
  sitestack plan --config site.yaml --format table`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := resolveConfig(cmd, site.EnvContext())
			if err != nil {
				return err
			}

			p, err := plan.Build(cfg)
			if err != nil {
				return err
			}

			ordered, err := p.Order()
			if err != nil {
				return fmt.Errorf("failed to order resources: %w", err)
			}
			p.Resources = ordered
			p.Init(header.KindSitePlan, version)
			setRunMetadata(&p.Header, cmd, cfg)

			slog.Debug("plan built", "siteDomain", p.Site.SiteDomain, "resources", len(p.Resources))

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closeErr := ser.Close(); closeErr != nil {
					slog.Warn("failed to close serializer", "error", closeErr)
				}
			}()

			return ser.Serialize(ctx, p)
		},
	}
}
