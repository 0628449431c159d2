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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/server"
)

func TestPreviewConfig(t *testing.T) {
	clearSiteEnv(t)
	t.Setenv("PORT", "")

	var got *server.Config
	preview := previewCmd()
	cmd := &cli.Command{
		Name:  "test",
		Flags: append(rootFlags(), preview.Flags...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := layerConfig(cmd, nil)
			if err != nil {
				return err
			}
			got = previewConfig(cmd, cfg)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{
		"test", "--asset-path", "./public", "--port", "3000", "--error-status", "404", "--rate-limit", "5",
	}))
	require.NotNil(t, got)

	assert.Equal(t, "./public", got.Root)
	assert.Equal(t, 3000, got.Port)
	assert.Equal(t, 404, got.ErrorStatus)
	assert.Equal(t, rate.Limit(5), got.RateLimit)
	assert.Equal(t, "index.html", got.IndexDocument)
	assert.Equal(t, "error.html", got.ErrorDocument)
}

func TestPreviewCmd_MissingRoot(t *testing.T) {
	clearSiteEnv(t)
	t.Setenv("CDK_CONTEXT_JSON", "")

	err := newRootCmd().Run(context.Background(), []string{
		name, "--asset-path", filepath.Join(t.TempDir(), "missing"), "preview",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
