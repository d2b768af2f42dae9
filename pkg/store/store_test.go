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

package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/file"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/memory"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/stdout"
)

func TestParse(t *testing.T) {
	tests := []struct {
		uri  string
		want Destination
	}{
		{"gs://health-bucket", Destination{SchemeGCS, "health-bucket"}},
		{"health-bucket", Destination{SchemeGCS, "health-bucket"}},
		{"file:///var/lib/healthsnap", Destination{SchemeFile, "/var/lib/healthsnap"}},
		{"file://out", Destination{SchemeFile, "out"}},
		{"cm://monitoring", Destination{SchemeConfigMap, "monitoring"}},
		{"cm://", Destination{SchemeConfigMap, "default"}},
		{"mem://dry", Destination{SchemeMemory, "dry"}},
		{"stdout", Destination{Stdout, Stdout}},
		{"-", Destination{Stdout, Stdout}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := Parse(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, uri := range []string{"", "  ", "s3://bucket", "gs://", "mem://"} {
		t.Run(uri, func(t *testing.T) {
			_, err := Parse(uri)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestOpenLocal(t *testing.T) {
	ctx := context.Background()

	s, bucket, err := Open(ctx, "mem://dry", Options{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
	assert.Equal(t, "dry", bucket)

	dir := t.TempDir()
	s, bucket, err = Open(ctx, "file://"+dir, Options{})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, s)
	assert.Equal(t, dir, bucket)

	var buf bytes.Buffer
	s, _, err = Open(ctx, "stdout", Options{Out: &buf})
	require.NoError(t, err)
	assert.IsType(t, &stdout.Store{}, s)
	require.NoError(t, s.Create(ctx, "stdout", "a.csv", []byte("x")))
	assert.Contains(t, buf.String(), "x")
}
