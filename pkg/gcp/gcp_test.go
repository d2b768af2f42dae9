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

package gcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{name: "unauthorized", err: &googleapi.Error{Code: http.StatusUnauthorized}, want: errors.ErrCodeUnauthorized},
		{name: "forbidden", err: &googleapi.Error{Code: http.StatusForbidden}, want: errors.ErrCodeUnauthorized},
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, want: errors.ErrCodeNotFound},
		{name: "throttled", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: errors.ErrCodeRateLimitExceeded},
		{name: "gateway timeout", err: &googleapi.Error{Code: http.StatusGatewayTimeout}, want: errors.ErrCodeTimeout},
		{name: "bad request", err: &googleapi.Error{Code: http.StatusBadRequest}, want: errors.ErrCodeInvalidRequest},
		{name: "server error", err: &googleapi.Error{Code: http.StatusServiceUnavailable}, want: errors.ErrCodeUnavailable},
		{name: "wrapped api error", err: fmt.Errorf("call: %w", &googleapi.Error{Code: 404}), want: errors.ErrCodeNotFound},
		{name: "deadline", err: context.DeadlineExceeded, want: errors.ErrCodeTimeout},
		{name: "other", err: stderrors.New("boom"), want: errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err, "regions.get", map[string]any{"region": "us-east4"})
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.CodeOf(err))

			var se *errors.StructuredError
			require.True(t, stderrors.As(err, &se))
			assert.Equal(t, "regions.get", se.Context["operation"])
			assert.Equal(t, "us-east4", se.Context["region"])
		})
	}
}

func TestClassifyKeepsStructuredErrors(t *testing.T) {
	orig := errors.New(errors.ErrCodeUnauthorized, "no credentials")
	assert.Same(t, orig, Classify(orig, "op", nil))
	assert.NoError(t, Classify(nil, "op", nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&googleapi.Error{Code: http.StatusNotFound}))
	assert.False(t, IsNotFound(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, IsNotFound(stderrors.New("404")))
}

func TestClientOptionsWithHTTPClient(t *testing.T) {
	opts, err := Options{
		UserAgent:  "healthsnap/test",
		Endpoint:   "http://127.0.0.1:1/",
		HTTPClient: http.DefaultClient,
	}.ClientOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}
