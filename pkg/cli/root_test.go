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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, name, cmd.Name)
	assert.Equal(t, "synth", cmd.DefaultCommand)
	require.NotNil(t, cmd.Before)

	for _, sub := range []string{"synth", "plan", "verify"} {
		t.Run(sub, func(t *testing.T) {
			c := cmd.Command(sub)
			require.NotNil(t, c, "command %s not registered", sub)
			assert.NotEmpty(t, c.Usage)
			assert.NotNil(t, c.Action)
		})
	}
}
