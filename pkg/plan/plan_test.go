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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/site"
)

func baseConfig() site.Config {
	cfg := site.Default()
	cfg.DomainName = "Example.com"
	cfg.SubDomain = "www"
	return cfg
}

func ids(resources []Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.ID)
	}
	return out
}

func TestBuild_Settings(t *testing.T) {
	p, err := Build(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, "example.com", p.Site.Domain)
	assert.Equal(t, "www.example.com", p.Site.SiteDomain)
	assert.Equal(t, "https://www.example.com", p.Site.URL)
	assert.Equal(t, "us-east-1", p.Site.CertificateRegion)
	assert.Equal(t, []string{"/*"}, p.Site.InvalidationPaths)
}

func TestBuild_DefaultGraph(t *testing.T) {
	p, err := Build(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		IDZone, IDBucket, IDOriginAccess, IDCertificate, IDDistribution, IDRecordA, IDDeployment,
	}, ids(p.Resources))

	zone, ok := p.Resource(IDZone)
	require.True(t, ok)
	assert.True(t, zone.Imported)
	assert.Equal(t, "true", zone.Properties["lookup"])

	bucket, _ := p.Resource(IDBucket)
	assert.Equal(t, "www.example.com", bucket.Properties["bucketName"])

	dist, _ := p.Resource(IDDistribution)
	assert.Equal(t, "www.example.com", dist.Properties["aliases"])
	assert.Equal(t, "403 -> /error.html (403, ttl 30m0s)", dist.Properties["errorResponse"])
	assert.ElementsMatch(t, []string{IDBucket, IDOriginAccess, IDCertificate}, dist.DependsOn)

	record, _ := p.Resource(IDRecordA)
	assert.Equal(t, "www.example.com.", record.Properties["name"])

	deploy, _ := p.Resource(IDDeployment)
	assert.Equal(t, "/*", deploy.Properties["invalidationPaths"])
}

func TestBuild_Options(t *testing.T) {
	cfg := baseConfig()
	cfg.SubDomain = ""
	cfg.HostedZoneID = "Z123"
	cfg.OriginAccess = site.OriginAccessIdentity
	aaaa := true
	cfg.CreateAAAARecord = &aaaa

	p, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		IDZone, IDBucket, IDOriginAccessIdentity, IDCertificate, IDDistribution, IDRecordA, IDRecordAAAA, IDDeployment,
	}, ids(p.Resources))

	zone, _ := p.Resource(IDZone)
	assert.Equal(t, "Z123", zone.Properties["id"])
	assert.NotContains(t, zone.Properties, "lookup")

	aaaaRecord, _ := p.Resource(IDRecordAAAA)
	assert.Equal(t, "AAAA", aaaaRecord.Properties["type"])
	assert.Equal(t, "example.com.", aaaaRecord.Properties["name"])

	_, ok := p.Resource("Missing")
	assert.False(t, ok)
}

func TestBuild_Invalid(t *testing.T) {
	cfg := baseConfig()
	cfg.DomainName = ""

	_, err := Build(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	cfg := baseConfig()
	_, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Example.com", cfg.DomainName)
}

func TestPlan_Order(t *testing.T) {
	p, err := Build(baseConfig())
	require.NoError(t, err)

	ordered, err := p.Order()
	require.NoError(t, err)

	pos := make(map[string]int)
	for i, r := range ordered {
		pos[r.ID] = i
	}
	for _, r := range ordered {
		for _, dep := range r.DependsOn {
			assert.Less(t, pos[dep], pos[r.ID], "%s must follow %s", r.ID, dep)
		}
	}
	assert.Less(t, pos[IDBucket], pos[IDCertificate])
	assert.Less(t, pos[IDCertificate], pos[IDDistribution])
	assert.Less(t, pos[IDDistribution], pos[IDRecordA])
	assert.Less(t, pos[IDRecordA], pos[IDDeployment])
}

func TestPlan_OrderReordersDeclarations(t *testing.T) {
	p := &Plan{Resources: []Resource{
		{ID: "c", DependsOn: []string{"b"}},
		{ID: "b", DependsOn: []string{"a"}},
		{ID: "a"},
		{ID: "d"},
	}}

	ordered, err := p.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(ordered))
}

func TestPlan_OrderErrors(t *testing.T) {
	tests := []struct {
		name      string
		resources []Resource
	}{
		{
			name:      "unknown dependency",
			resources: []Resource{{ID: "a", DependsOn: []string{"missing"}}},
		},
		{
			name:      "duplicate id",
			resources: []Resource{{ID: "a"}, {ID: "a"}},
		},
		{
			name: "cycle",
			resources: []Resource{
				{ID: "a", DependsOn: []string{"b"}},
				{ID: "b", DependsOn: []string{"a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Plan{Resources: tt.resources}).Order()
			assert.Error(t, err)
		})
	}
}
