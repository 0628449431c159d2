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
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/site"
)

// Environment variables set by the CDK CLI when it runs the app.
const (
	EnvDefaultAccount = "CDK_DEFAULT_ACCOUNT"
	EnvDefaultRegion  = "CDK_DEFAULT_REGION"
)

// DefaultStackName is used when no stack name is configured.
const DefaultStackName = "StaticSite"

// SiteStack is a stack holding a single StaticSite.
type SiteStack struct {
	awscdk.Stack
	Site *StaticSite
}

// NewStack declares a stack containing the static site for cfg.
// cfg is normalized and validated first; jsii construct errors are
// returned as errors rather than panics.
func NewStack(scope constructs.Construct, id string, cfg site.Config) (s *SiteStack, err error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := environment(cfg)
	if err := checkEnvironment(cfg, env); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.WrapWithContext(errors.ErrCodeInternal, "failed to declare site stack",
				fmt.Errorf("%v", r), map[string]any{"stack": id, "domain": cfg.SiteDomain()})
		}
	}()

	stack := awscdk.NewStack(scope, jsii.String(id), &awscdk.StackProps{
		Env:         env,
		Description: jsii.String(fmt.Sprintf("Static site for %s", cfg.SiteDomain())),
	})
	awscdk.Tags_Of(stack).Add(jsii.String("site"), jsii.String(cfg.SiteDomain()), nil)

	slog.Debug("declaring static site",
		"stack", id,
		"domain", cfg.SiteDomain(),
		"originAccess", cfg.OriginAccess,
		"hostedZoneId", cfg.HostedZoneID)

	return &SiteStack{
		Stack: stack,
		Site:  NewStaticSite(stack, "StaticSite", cfg),
	}, nil
}

// environment resolves the stack environment from cfg, falling back to the
// values the CDK CLI exports. Returns nil for an environment-agnostic stack.
func environment(cfg site.Config) *awscdk.Environment {
	account := firstNonEmpty(cfg.Account, os.Getenv(EnvDefaultAccount))
	region := firstNonEmpty(cfg.Region, os.Getenv(EnvDefaultRegion))
	if account == "" && region == "" {
		return nil
	}

	env := &awscdk.Environment{}
	if account != "" {
		env.Account = jsii.String(account)
	}
	if region != "" {
		env.Region = jsii.String(region)
	}
	return env
}

// checkEnvironment rejects configurations that need a hosted zone lookup
// without a concrete account and region to look it up in.
func checkEnvironment(cfg site.Config, env *awscdk.Environment) error {
	if cfg.HostedZoneID != "" {
		return nil
	}
	if env == nil || env.Account == nil || env.Region == nil {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"hosted zone lookup requires an account and region; set them or provide a hosted zone ID",
			map[string]any{"domain": cfg.DomainName})
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
