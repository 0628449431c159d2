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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sitestack/pkg/errors"
)

func TestVerifyCmdRejectsInput(t *testing.T) {
	clearSiteEnv(t)
	t.Setenv("CDK_CONTEXT_JSON", "")

	t.Run("missing domain", func(t *testing.T) {
		err := newRootCmd().Run(context.Background(), []string{name, "verify"})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
	})

	t.Run("invalid format", func(t *testing.T) {
		err := newRootCmd().Run(context.Background(), []string{
			name, "--domain", "example.com", "verify", "--format", "xml",
		})
		require.Error(t, err)
	})

	t.Run("flag defaults", func(t *testing.T) {
		cmd := verifyCmd()
		var names []string
		for _, f := range cmd.Flags {
			names = append(names, f.Names()[0])
		}
		assert.Subset(t, names, []string{"wait", "timeout", "wait-timeout", "interval", "expect-error-status"})
	})
}
