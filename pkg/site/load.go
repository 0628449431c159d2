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

package site

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/serializer"
)

// EnvCDKContext is the environment variable the CDK CLI uses to pass
// context (cdk.json and -c flags) to the app.
const EnvCDKContext = "CDK_CONTEXT_JSON"

// CDK context keys read by FromContext.
const (
	ContextKeyDomain       = "domain"
	ContextKeySubDomain    = "subdomain"
	ContextKeyHostedZoneID = "hostedZoneId"
)

// Load reads a Config from a YAML or JSON file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound, "config file not found",
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to stat config file %q", path), err)
	}

	cfg, err := serializer.FromFile[Config](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config file", err,
			map[string]any{"path": path})
	}

	slog.Debug("loaded site config", "path", path, "domain", cfg.DomainName)
	return cfg, nil
}

// ContextLookup returns the value stored under a context key, or nil.
type ContextLookup func(key string) any

// FromContext builds a partial Config from CDK context values
// (cdk synth -c domain=example.com -c subdomain=www).
// Non-string values are ignored.
func FromContext(lookup ContextLookup) Config {
	var cfg Config
	if lookup == nil {
		return cfg
	}
	cfg.DomainName = contextString(lookup, ContextKeyDomain)
	cfg.SubDomain = contextString(lookup, ContextKeySubDomain)
	cfg.HostedZoneID = contextString(lookup, ContextKeyHostedZoneID)
	return cfg
}

func contextString(lookup ContextLookup, key string) string {
	if s, ok := lookup(key).(string); ok {
		return s
	}
	return ""
}

// EnvContext returns a lookup over the context the CDK CLI exported in
// CDK_CONTEXT_JSON, for commands that do not start the CDK runtime.
// Returns nil when the variable is unset or malformed.
func EnvContext() ContextLookup {
	raw := strings.TrimSpace(os.Getenv(EnvCDKContext))
	if raw == "" {
		return nil
	}

	reader, err := serializer.NewReader(serializer.FormatJSON, strings.NewReader(raw))
	if err != nil {
		slog.Warn("failed to read CDK context", "error", err)
		return nil
	}
	values := make(map[string]any)
	if err := reader.Deserialize(&values); err != nil {
		slog.Warn("ignoring malformed CDK context", "env", EnvCDKContext, "error", err)
		return nil
	}

	return func(key string) any {
		return values[key]
	}
}
