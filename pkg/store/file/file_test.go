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

package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New()
	path := "2024-03-01/us-east4/NodeHealth.csv"

	_, ok, err := s.Get(ctx, dir, path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Create(ctx, dir, path, []byte("n1,4,8,100,")))
	raw, err := os.ReadFile(filepath.Join(dir, "2024-03-01", "us-east4", "NodeHealth.csv"))
	require.NoError(t, err)
	assert.Equal(t, "n1,4,8,100,", string(raw))

	// create does not overwrite
	require.Error(t, s.Create(ctx, dir, path, []byte("other")))

	ok, err = s.Exists(ctx, dir, path)
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok, err := s.Get(ctx, dir, path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "n1,4,8,100,", string(got))

	require.NoError(t, s.Delete(ctx, dir, path))
	require.NoError(t, s.Delete(ctx, dir, path))
	_, ok, err = s.Get(ctx, dir, path)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Exists(ctx, dir, path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidPaths(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, p := range []string{"../escape.csv", "/abs.csv", "", "a/../../b.csv"} {
		t.Run(p, func(t *testing.T) {
			assert.Error(t, s.Create(ctx, t.TempDir(), p, []byte("x")))
		})
	}
	assert.Error(t, s.Create(ctx, "", "a.csv", []byte("x")))
}
