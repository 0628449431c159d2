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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/sitestack/pkg/defaults"
	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/header"
	"github.com/mchmarny/sitestack/pkg/serializer"
	"github.com/mchmarny/sitestack/pkg/site"
	"github.com/mchmarny/sitestack/pkg/verify"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Smoke-check a deployed site.",
		Description: `Probes the site domain over the network:
  - the root document answers 200 over HTTPS
  - plain HTTP redirects to HTTPS
  - the served certificate is valid for the site domain
  - a missing object answers with the error document status

With --wait the checks are repeated until they pass or --wait-timeout
elapses, which covers DNS and certificate propagation after a deploy.

Examples:

  sitestack verify --domain example.com --subdomain www
  sitestack verify --domain example.com --wait --wait-timeout 45m`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Repeat the checks until they pass",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.HTTPClientTimeout,
				Usage: "Timeout for each probe request",
			},
			&cli.DurationFlag{
				Name:  "wait-timeout",
				Value: defaults.VerifyWaitTimeout,
				Usage: "How long --wait keeps checking",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: defaults.VerifyPollInterval,
				Usage: "Delay between rounds with --wait",
			},
			&cli.IntFlag{
				Name:  "expect-error-status",
				Value: 403,
				Usage: "Status a missing object must answer with",
			},
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

			opts := []verify.Option{
				verify.WithTimeout(cmd.Duration("timeout")),
				verify.WithPollInterval(cmd.Duration("interval")),
				verify.WithWaitTimeout(cmd.Duration("wait-timeout")),
				verify.WithExpectedErrorStatus(int(cmd.Int("expect-error-status"))),
			}

			var result *verify.Result
			if cmd.Bool("wait") {
				result, err = verify.Wait(ctx, cfg.SiteDomain(), opts...)
			} else {
				result, err = verify.Check(ctx, cfg.SiteDomain(), opts...)
			}
			if result == nil {
				return err
			}

			result.Init(header.KindSiteCheck, version)
			setRunMetadata(&result.Header, cmd, cfg)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closeErr := ser.Close(); closeErr != nil {
					slog.Warn("failed to close serializer", "error", closeErr)
				}
			}()

			if serErr := ser.Serialize(ctx, result); serErr != nil {
				return fmt.Errorf("failed to serialize verify result: %w", serErr)
			}

			if err != nil {
				return err
			}
			if !result.Passed {
				return errors.NewWithContext(errors.ErrCodeUnavailable, "site checks failed", map[string]any{
					"domain": result.Domain,
					"failed": strings.Join(result.Failed(), ","),
				})
			}
			return nil
		},
	}
}
