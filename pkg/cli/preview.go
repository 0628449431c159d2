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

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/mchmarny/sitestack/pkg/server"
	"github.com/mchmarny/sitestack/pkg/site"
)

func previewCmd() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Serve the site content locally.",
		Description: `Serves the asset directory over plain HTTP the way the deployed
distribution answers: "/" is the index document, existing objects are served
as is, and anything else gets the error document with the error status.

No domain is needed. Health, readiness and Prometheus metrics are served
under /-/.

Examples:

  sitestack preview
  sitestack preview --asset-path ./public --port 3000`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Value: "127.0.0.1",
				Usage: "Address to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.IntFlag{
				Name:  "error-status",
				Value: 403,
				Usage: "Status missing objects are answered with",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Value: 100,
				Usage: "Requests per second",
			},
			&cli.IntFlag{
				Name:  "rate-burst",
				Value: 200,
				Usage: "Request burst size",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := layerConfig(cmd, site.EnvContext())
			if err != nil {
				return err
			}

			srvCfg := previewConfig(cmd, cfg)
			srv, err := server.New(srvCfg)
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}
}

func previewConfig(cmd *cli.Command, cfg site.Config) *server.Config {
	srvCfg := server.NewConfig()
	srvCfg.Name = name + "-preview"
	srvCfg.Version = version
	srvCfg.Address = cmd.String("address")
	srvCfg.Port = int(cmd.Int("port"))
	srvCfg.Root = cfg.AssetPath
	srvCfg.IndexDocument = cfg.IndexDocument
	srvCfg.ErrorDocument = cfg.ErrorDocument
	srvCfg.ErrorStatus = int(cmd.Int("error-status"))
	srvCfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
	srvCfg.RateLimitBurst = int(cmd.Int("rate-burst"))
	return srvCfg
}
