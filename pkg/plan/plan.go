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

package plan

import (
	"fmt"
	"strings"

	"github.com/mchmarny/sitestack/pkg/defaults"
	"github.com/mchmarny/sitestack/pkg/header"
	"github.com/mchmarny/sitestack/pkg/site"
)

// Construct IDs of the declared resources.
const (
	IDZone                 = "Zone"
	IDBucket               = "SiteBucket"
	IDOriginAccess         = "OriginAccess"
	IDOriginAccessIdentity = "OriginAccessIdentity"
	IDCertificate          = "SiteCertificate"
	IDDistribution         = "SiteDistribution"
	IDRecordA              = "SiteAliasRecord"
	IDRecordAAAA           = "SiteAliasRecordIPv6"
	IDDeployment           = "DeployWithInvalidation"
)

// CloudFormation resource types.
const (
	KindHostedZone           = "AWS::Route53::HostedZone"
	KindBucket               = "AWS::S3::Bucket"
	KindOriginAccessControl  = "AWS::CloudFront::OriginAccessControl"
	KindOriginAccessIdentity = "AWS::CloudFront::CloudFrontOriginAccessIdentity"
	KindCertificate          = "AWS::CertificateManager::Certificate"
	KindDistribution         = "AWS::CloudFront::Distribution"
	KindRecordSet            = "AWS::Route53::RecordSet"
	KindBucketDeployment     = "Custom::CDKBucketDeployment"
)

// Plan is the description of a site stack.
type Plan struct {
	header.Header `json:",inline" yaml:",inline"`

	Site      Settings   `json:"site" yaml:"site"`
	Resources []Resource `json:"resources" yaml:"resources"`
}

// Settings are the resolved values the resources are declared with.
type Settings struct {
	Domain            string   `json:"domain" yaml:"domain"`
	SiteDomain        string   `json:"siteDomain" yaml:"siteDomain"`
	URL               string   `json:"url" yaml:"url"`
	CertificateRegion string   `json:"certificateRegion" yaml:"certificateRegion"`
	AssetPath         string   `json:"assetPath" yaml:"assetPath"`
	InvalidationPaths []string `json:"invalidationPaths" yaml:"invalidationPaths"`
	Account           string   `json:"account,omitempty" yaml:"account,omitempty"`
	Region            string   `json:"region,omitempty" yaml:"region,omitempty"`
}

// Resource is a single declared resource.
type Resource struct {
	ID         string            `json:"id" yaml:"id"`
	Kind       string            `json:"kind" yaml:"kind"`
	Imported   bool              `json:"imported,omitempty" yaml:"imported,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	DependsOn  []string          `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// Build describes the resources declared for cfg. cfg is normalized and
// validated on a copy.
func Build(cfg site.Config) (*Plan, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	siteDomain := cfg.SiteDomain()
	p := &Plan{
		Site: Settings{
			Domain:            cfg.DomainName,
			SiteDomain:        siteDomain,
			URL:               cfg.SiteURL(),
			CertificateRegion: defaults.CertificateRegion,
			AssetPath:         cfg.AssetPath,
			InvalidationPaths: cfg.InvalidationPaths,
			Account:           cfg.Account,
			Region:            cfg.Region,
		},
	}

	zone := Resource{
		ID:         IDZone,
		Kind:       KindHostedZone,
		Imported:   true,
		Properties: map[string]string{"name": cfg.DomainName},
	}
	if cfg.HostedZoneID != "" {
		zone.Properties["id"] = cfg.HostedZoneID
	} else {
		zone.Properties["lookup"] = "true"
	}

	bucket := Resource{
		ID:   IDBucket,
		Kind: KindBucket,
		Properties: map[string]string{
			"bucketName":        siteDomain,
			"blockPublicAccess": "all",
			"enforceSSL":        "true",
			"removalPolicy":     "destroy",
			"autoDeleteObjects": "true",
		},
	}

	access := Resource{
		ID:         IDOriginAccess,
		Kind:       KindOriginAccessControl,
		Properties: map[string]string{"signing": "sigv4"},
	}
	if cfg.OriginAccess == site.OriginAccessIdentity {
		access = Resource{
			ID:         IDOriginAccessIdentity,
			Kind:       KindOriginAccessIdentity,
			Properties: map[string]string{"comment": "OAI for " + siteDomain},
		}
	}

	cert := Resource{
		ID:   IDCertificate,
		Kind: KindCertificate,
		Properties: map[string]string{
			"domainName": siteDomain,
			"validation": "dns",
			"region":     defaults.CertificateRegion,
		},
		DependsOn: []string{IDZone},
	}

	dist := Resource{
		ID:   IDDistribution,
		Kind: KindDistribution,
		Properties: map[string]string{
			"aliases":                siteDomain,
			"defaultRootObject":      cfg.IndexDocument,
			"minimumProtocolVersion": "TLSv1.2_2021",
			"viewerProtocolPolicy":   "redirect-to-https",
			"priceClass":             string(cfg.PriceClass),
			"errorResponse":          fmt.Sprintf("403 -> /%s (403, ttl %s)", cfg.ErrorDocument, cfg.ErrorCachingMinTTL()),
			"originAccess":           string(cfg.OriginAccess),
		},
		DependsOn: []string{IDBucket, access.ID, IDCertificate},
	}

	records := []Resource{aliasRecord(IDRecordA, "A", siteDomain)}
	if cfg.AAAARecord() {
		records = append(records, aliasRecord(IDRecordAAAA, "AAAA", siteDomain))
	}

	deploy := Resource{
		ID:   IDDeployment,
		Kind: KindBucketDeployment,
		Properties: map[string]string{
			"source":            cfg.AssetPath,
			"invalidationPaths": strings.Join(cfg.InvalidationPaths, ","),
		},
		DependsOn: []string{IDBucket, IDDistribution},
	}

	p.Resources = append(p.Resources, zone, bucket, access, cert, dist)
	p.Resources = append(p.Resources, records...)
	p.Resources = append(p.Resources, deploy)
	return p, nil
}

func aliasRecord(id, recordType, siteDomain string) Resource {
	return Resource{
		ID:   id,
		Kind: KindRecordSet,
		Properties: map[string]string{
			"name":   siteDomain + ".",
			"type":   recordType,
			"target": "alias:" + IDDistribution,
		},
		DependsOn: []string{IDZone, IDDistribution},
	}
}

// Resource returns the resource with the given ID.
func (p *Plan) Resource(id string) (Resource, bool) {
	for _, r := range p.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// Order returns the resources so that each appears after everything it
// depends on. Ties keep declaration order.
func (p *Plan) Order() ([]Resource, error) {
	index := make(map[string]int, len(p.Resources))
	for i, r := range p.Resources {
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate resource id %q", r.ID)
		}
		index[r.ID] = i
	}

	pending := make([]int, len(p.Resources))
	dependents := make([][]int, len(p.Resources))
	for i, r := range p.Resources {
		for _, dep := range r.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("resource %q depends on unknown resource %q", r.ID, dep)
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, len(p.Resources))
	ordered := make([]Resource, 0, len(p.Resources))
	for len(ordered) < len(p.Resources) {
		next := -1
		for i := range p.Resources {
			if !done[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("dependency cycle among %d resources", len(p.Resources)-len(ordered))
		}
		done[next] = true
		ordered = append(ordered, p.Resources[next])
		for _, d := range dependents[next] {
			pending[d]--
		}
	}
	return ordered, nil
}
