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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mchmarny/sitestack/pkg/header"
	"github.com/mchmarny/sitestack/pkg/serializer"
	"github.com/mchmarny/sitestack/pkg/site"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Site config file (YAML or JSON)",
			Sources: cli.EnvVars("SITE_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "domain",
			Usage:   "Apex domain owning the hosted zone (e.g., example.com)",
			Sources: cli.EnvVars("SITE_DOMAIN"),
		},
		&cli.StringFlag{
			Name:    "subdomain",
			Usage:   "Subdomain the site is served from (e.g., www)",
			Sources: cli.EnvVars("SITE_SUBDOMAIN"),
		},
		&cli.StringFlag{
			Name:    "hosted-zone-id",
			Usage:   "Import the hosted zone by ID instead of looking it up",
			Sources: cli.EnvVars("SITE_HOSTED_ZONE_ID"),
		},
		&cli.StringFlag{
			Name:    "asset-path",
			Usage:   "Directory with the site content (default: ./site-contents)",
			Sources: cli.EnvVars("SITE_ASSET_PATH"),
		},
		&cli.StringFlag{
			Name:    "origin-access",
			Usage:   fmt.Sprintf("How CloudFront reads the bucket (supported values: %v)", site.SupportedOriginAccess()),
			Sources: cli.EnvVars("SITE_ORIGIN_ACCESS"),
		},
		&cli.StringFlag{
			Name:    "price-class",
			Usage:   fmt.Sprintf("CloudFront price class (supported values: %v)", site.SupportedPriceClasses()),
			Sources: cli.EnvVars("SITE_PRICE_CLASS"),
		},
		&cli.StringSliceFlag{
			Name:  "invalidation-path",
			Usage: "Distribution path invalidated after deployment, repeatable (default: /*)",
		},
		&cli.BoolFlag{
			Name:    "aaaa",
			Usage:   "Also create an IPv6 (AAAA) alias record, --aaaa=false turns off a file setting",
			Sources: cli.EnvVars("SITE_AAAA"),
		},
		&cli.IntFlag{
			Name:    "error-cache-minutes",
			Usage:   "Minutes error responses stay cached at the edge, 0 disables caching (default: 30)",
			Sources: cli.EnvVars("SITE_ERROR_CACHE_MINUTES"),
		},
		&cli.StringFlag{
			Name:    "account",
			Usage:   "AWS account for the stack (default: CDK_DEFAULT_ACCOUNT)",
			Sources: cli.EnvVars("SITE_ACCOUNT"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for the stack (default: CDK_DEFAULT_REGION)",
			Sources: cli.EnvVars("SITE_REGION"),
		},
	}
}

// parseOutputFormat reads and validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// siteConfigFromCmd collects the site settings given as flags or SITE_* variables.
// Bool and int settings are only carried when set, so false and 0 still
// override a lower layer.
func siteConfigFromCmd(cmd *cli.Command) site.Config {
	cfg := site.Config{
		DomainName:        cmd.String("domain"),
		SubDomain:         cmd.String("subdomain"),
		HostedZoneID:      cmd.String("hosted-zone-id"),
		AssetPath:         cmd.String("asset-path"),
		OriginAccess:      site.OriginAccess(cmd.String("origin-access")),
		PriceClass:        site.PriceClass(cmd.String("price-class")),
		InvalidationPaths: cmd.StringSlice("invalidation-path"),
		Account:           cmd.String("account"),
		Region:            cmd.String("region"),
	}
	if cmd.IsSet("aaaa") {
		v := cmd.Bool("aaaa")
		cfg.CreateAAAARecord = &v
	}
	if cmd.IsSet("error-cache-minutes") {
		v := cmd.Int("error-cache-minutes")
		cfg.ErrorCacheMinutes = &v
	}
	return cfg
}

// layerConfig layers defaults, the config file, CDK context and flags.
func layerConfig(cmd *cli.Command, lookup site.ContextLookup) (site.Config, error) {
	cfg := site.Default()

	if path := cmd.String("config"); path != "" {
		fileCfg, err := site.Load(path)
		if err != nil {
			return site.Config{}, err
		}
		cfg.Merge(*fileCfg)
	}

	cfg.Merge(site.FromContext(lookup))
	cfg.Merge(siteConfigFromCmd(cmd))
	return cfg, nil
}

// resolveConfig layers the config sources, then normalizes and validates
// the result.
func resolveConfig(cmd *cli.Command, lookup site.ContextLookup) (site.Config, error) {
	cfg, err := layerConfig(cmd, lookup)
	if err != nil {
		return site.Config{}, err
	}

	if err := cfg.Normalize(); err != nil {
		return site.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return site.Config{}, err
	}

	slog.Debug("resolved site config",
		"siteDomain", cfg.SiteDomain(),
		"hostedZoneId", cfg.HostedZoneID,
		"assetPath", cfg.AssetPath,
		"originAccess", cfg.OriginAccess)

	return cfg, nil
}

// setRunMetadata records which site a document describes and, when one
// was used, the config file it was resolved from.
func setRunMetadata(h *header.Header, cmd *cli.Command, cfg site.Config) {
	h.SetMetadata("siteDomain", cfg.SiteDomain())
	if path := cmd.String("config"); path != "" {
		h.SetMetadata("configFile", path)
	}
}
