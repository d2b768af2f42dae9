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

package stdout

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "stdout", "2024-03-01/us-east4/NodeHealth.csv", []byte("n1,4,8,100,")))
	assert.Equal(t, "# stdout/2024-03-01/us-east4/NodeHealth.csv\nn1,4,8,100,\n", buf.String())

	_, ok, err := s.Get(ctx, "stdout", "2024-03-01/us-east4/NodeHealth.csv")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Exists(ctx, "stdout", "2024-03-01/us-east4/NodeHealth.csv")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Delete(ctx, "stdout", "x"))
}

func TestNewDefaultsToStdout(t *testing.T) {
	assert.NotNil(t, New(nil).out)
}
