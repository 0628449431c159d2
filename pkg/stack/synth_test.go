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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sitestack/pkg/site"
)

func TestApp_ContextLookup(t *testing.T) {
	app := NewApp(AppOptions{
		OutDir: t.TempDir(),
		Context: map[string]any{
			site.ContextKeyDomain:    "example.org",
			site.ContextKeySubDomain: "docs",
		},
	})

	cfg := site.FromContext(app.ContextLookup())
	assert.Equal(t, "docs.example.org", cfg.SiteDomain())
	assert.Nil(t, app.ContextLookup()("missing"))
}

func TestApp_Synth(t *testing.T) {
	outDir := t.TempDir()
	app := NewApp(AppOptions{
		OutDir:    outDir,
		StackName: "DocsSite",
		Context:   map[string]any{site.ContextKeyDomain: "example.org"},
	})

	cfg := testConfig(func(c *site.Config) {
		c.DomainName = ""
		c.SubDomain = "docs"
	})
	cfg.Merge(site.FromContext(app.ContextLookup()))

	dir, err := app.Synth(cfg)
	require.NoError(t, err)
	assert.Equal(t, outDir, dir)

	_, err = os.Stat(filepath.Join(dir, "manifest.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "DocsSite.template.json"))
	assert.NoError(t, err)
}

func TestApp_SynthInvalidConfig(t *testing.T) {
	app := NewApp(AppOptions{OutDir: t.TempDir()})

	_, err := app.Synth(site.Config{})
	assert.Error(t, err)
}
