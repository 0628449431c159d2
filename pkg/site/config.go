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
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mchmarny/sitestack/pkg/defaults"
	"github.com/mchmarny/sitestack/pkg/errors"
)

// OriginAccess selects how the distribution authenticates to the bucket.
type OriginAccess string

const (
	// OriginAccessControl uses a CloudFront origin access control (SigV4).
	OriginAccessControl OriginAccess = "oac"
	// OriginAccessIdentity uses a legacy CloudFront origin access identity.
	OriginAccessIdentity OriginAccess = "oai"
)

// IsValid reports whether o is a supported origin access mode.
func (o OriginAccess) IsValid() bool {
	return o == OriginAccessControl || o == OriginAccessIdentity
}

// SupportedOriginAccess returns the supported origin access modes.
func SupportedOriginAccess() []string {
	return []string{string(OriginAccessControl), string(OriginAccessIdentity)}
}

// PriceClass limits the edge locations serving the distribution.
type PriceClass string

const (
	PriceClass100 PriceClass = "100"
	PriceClass200 PriceClass = "200"
	PriceClassAll PriceClass = "all"
)

// IsValid reports whether p is a supported price class.
func (p PriceClass) IsValid() bool {
	switch p {
	case PriceClass100, PriceClass200, PriceClassAll:
		return true
	default:
		return false
	}
}

// SupportedPriceClasses returns the supported price classes.
func SupportedPriceClasses() []string {
	return []string{string(PriceClass100), string(PriceClass200), string(PriceClassAll)}
}

// Config is the caller-supplied description of a static site.
type Config struct {
	// DomainName is the apex domain owning the hosted zone, e.g. example.com.
	DomainName string `json:"domain" yaml:"domain"`

	// SubDomain is prepended to DomainName when set, e.g. www.
	SubDomain string `json:"subdomain,omitempty" yaml:"subdomain,omitempty"`

	// HostedZoneID imports the zone by ID instead of looking it up by name.
	HostedZoneID string `json:"hostedZoneId,omitempty" yaml:"hostedZoneId,omitempty"`

	AssetPath         string       `json:"assetPath,omitempty" yaml:"assetPath,omitempty"`
	IndexDocument     string       `json:"indexDocument,omitempty" yaml:"indexDocument,omitempty"`
	ErrorDocument     string       `json:"errorDocument,omitempty" yaml:"errorDocument,omitempty"`
	InvalidationPaths []string     `json:"invalidationPaths,omitempty" yaml:"invalidationPaths,omitempty"`
	OriginAccess      OriginAccess `json:"originAccess,omitempty" yaml:"originAccess,omitempty"`
	PriceClass        PriceClass   `json:"priceClass,omitempty" yaml:"priceClass,omitempty"`

	// ErrorCacheMinutes and CreateAAAARecord are pointers so a layer can
	// set them to zero or false. Nil leaves the lower layer's value.
	ErrorCacheMinutes *int  `json:"errorCacheMinutes,omitempty" yaml:"errorCacheMinutes,omitempty"`
	CreateAAAARecord  *bool `json:"createAAAARecord,omitempty" yaml:"createAAAARecord,omitempty"`

	// Account and Region set the stack environment. Empty values leave the
	// environment to the CDK CLI defaults.
	Account string `json:"account,omitempty" yaml:"account,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Default returns a Config with every optional setting at its default.
func Default() Config {
	return Config{
		AssetPath:         defaults.AssetPath,
		IndexDocument:     defaults.IndexDocument,
		ErrorDocument:     defaults.ErrorDocument,
		ErrorCacheMinutes: ptr(int(defaults.ErrorCachingMinTTL / time.Minute)),
		InvalidationPaths: defaults.InvalidationPaths(),
		OriginAccess:      OriginAccessControl,
		PriceClass:        PriceClass100,
		CreateAAAARecord:  ptr(false),
	}
}

// SiteDomain returns the fully-qualified domain the site is served from:
// SubDomain + "." + DomainName when a subdomain is set, DomainName otherwise.
func (c Config) SiteDomain() string {
	if c.SubDomain == "" {
		return c.DomainName
	}
	return c.SubDomain + "." + c.DomainName
}

// SiteURL returns the https URL of the site root.
func (c Config) SiteURL() string {
	return "https://" + c.SiteDomain()
}

// ErrorCachingMinTTL returns how long error responses are cached at the edge.
func (c Config) ErrorCachingMinTTL() time.Duration {
	if c.ErrorCacheMinutes == nil {
		return defaults.ErrorCachingMinTTL
	}
	return time.Duration(*c.ErrorCacheMinutes) * time.Minute
}

// AAAARecord reports whether an IPv6 alias record is declared.
func (c Config) AAAARecord() bool {
	return c.CreateAAAARecord != nil && *c.CreateAAAARecord
}

// Merge overlays the set fields of o onto c. Strings and slices count as
// set when non-empty, pointer fields when non-nil.
func (c *Config) Merge(o Config) {
	setString(&c.DomainName, o.DomainName)
	setString(&c.SubDomain, o.SubDomain)
	setString(&c.HostedZoneID, o.HostedZoneID)
	setString(&c.AssetPath, o.AssetPath)
	setString(&c.IndexDocument, o.IndexDocument)
	setString(&c.ErrorDocument, o.ErrorDocument)
	setString(&c.Account, o.Account)
	setString(&c.Region, o.Region)
	if o.ErrorCacheMinutes != nil {
		c.ErrorCacheMinutes = ptr(*o.ErrorCacheMinutes)
	}
	if len(o.InvalidationPaths) > 0 {
		c.InvalidationPaths = slices.Clone(o.InvalidationPaths)
	}
	if o.OriginAccess != "" {
		c.OriginAccess = o.OriginAccess
	}
	if o.PriceClass != "" {
		c.PriceClass = o.PriceClass
	}
	if o.CreateAAAARecord != nil {
		c.CreateAAAARecord = ptr(*o.CreateAAAARecord)
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func ptr[T any](v T) *T {
	return &v
}

// Normalize lowercases the domain parts, strips a trailing root dot and
// converts internationalized names to their ASCII form.
func (c *Config) Normalize() error {
	domain, err := toASCII(c.DomainName)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid domain name", err,
			map[string]any{"domain": c.DomainName})
	}
	c.DomainName = domain

	if c.SubDomain != "" {
		sub, err := toASCII(c.SubDomain)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid subdomain", err,
				map[string]any{"subdomain": c.SubDomain})
		}
		c.SubDomain = sub
	}

	c.HostedZoneID = strings.TrimPrefix(strings.TrimSpace(c.HostedZoneID), "/hostedzone/")
	c.OriginAccess = OriginAccess(strings.ToLower(string(c.OriginAccess)))
	c.PriceClass = PriceClass(strings.ToLower(string(c.PriceClass)))
	return nil
}

// Validate checks c for values the resource declarations cannot accept.
func (c Config) Validate() error {
	if c.DomainName == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "domain name is required")
	}
	if !strings.Contains(c.DomainName, ".") {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"domain name must contain at least two labels",
			map[string]any{"domain": c.DomainName})
	}
	if err := validateDNSName(c.SiteDomain()); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid site domain", err,
			map[string]any{"domain": c.DomainName, "subdomain": c.SubDomain})
	}
	if !c.OriginAccess.IsValid() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("origin access %q, supported values: %v", c.OriginAccess, SupportedOriginAccess()),
			map[string]any{"originAccess": string(c.OriginAccess)})
	}
	if !c.PriceClass.IsValid() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("price class %q, supported values: %v", c.PriceClass, SupportedPriceClasses()),
			map[string]any{"priceClass": string(c.PriceClass)})
	}
	if strings.TrimSpace(c.AssetPath) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "asset path is required")
	}
	if c.IndexDocument == "" || strings.HasPrefix(c.IndexDocument, "/") {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"index document must be a relative object key",
			map[string]any{"indexDocument": c.IndexDocument})
	}
	if c.ErrorDocument == "" || strings.HasPrefix(c.ErrorDocument, "/") {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"error document must be a relative object key",
			map[string]any{"errorDocument": c.ErrorDocument})
	}
	if c.ErrorCacheMinutes != nil && *c.ErrorCacheMinutes < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "error cache minutes cannot be negative")
	}
	if len(c.InvalidationPaths) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "at least one invalidation path is required")
	}
	for _, p := range c.InvalidationPaths {
		if !strings.HasPrefix(p, "/") {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"invalidation paths must start with /",
				map[string]any{"path": p})
		}
	}
	return nil
}
