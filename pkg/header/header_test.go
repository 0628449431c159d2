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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindSitePlan, true},
		{KindSiteCheck, true},
		{Kind("Snapshot"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsValid())
		})
	}
}

func TestInit(t *testing.T) {
	h := Header{Metadata: map[string]string{"stale": "x"}}
	h.Init(KindSitePlan, "v1.2.3")

	assert.Equal(t, KindSitePlan, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindSiteCheck, "")
	assert.NotContains(t, h.Metadata, "version")
}

func TestSetMetadata(t *testing.T) {
	var h Header
	h.SetMetadata("domain", "www.example.com")
	assert.Equal(t, "www.example.com", h.Metadata["domain"])
}
