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

package gce

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

func newTestServer(t *testing.T, h http.HandlerFunc) gcp.Options {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return gcp.Options{Endpoint: srv.URL + "/", HTTPClient: srv.Client()}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestListZones(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/projects/p1/regions/us-east4") {
			writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"unexpected path"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{
			"name": "us-east4",
			"zones": [
				"https://www.googleapis.com/compute/v1/projects/p1/zones/us-east4-a",
				"https://www.googleapis.com/compute/v1/projects/p1/zones/us-east4-b"
			]
		}`)
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	zones, err := c.ListZones(context.Background(), "p1", "us-east4")
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east4-a", "us-east4-b"}, zones)
}

func TestListZonesNotFound(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"region not found"}}`)
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	zones, err := c.ListZones(context.Background(), "p1", "nowhere")
	require.Error(t, err)
	assert.Empty(t, zones)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestListInstancesPaginates(t *testing.T) {
	var filters []string
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/projects/p1/zones/z1/instances") {
			writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"unexpected path"}}`)
			return
		}
		filters = append(filters, r.URL.Query().Get("filter"))
		switch r.URL.Query().Get("pageToken") {
		case "":
			writeJSON(w, http.StatusOK, `{
				"items": [{"id": "101", "name": "vm-a", "status": "RUNNING"}],
				"nextPageToken": "page2"
			}`)
		case "page2":
			writeJSON(w, http.StatusOK, `{
				"items": [{"id": "102", "name": "vm-b", "status": "TERMINATED",
					"zone": "https://www.googleapis.com/compute/v1/projects/p1/zones/z1"}]
			}`)
		default:
			writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"bad token"}}`)
		}
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	var got []inventory.Instance
	for in, err := range c.ListInstances(context.Background(), "p1", "z1", "scheduling.preemptible = true") {
		require.NoError(t, err)
		got = append(got, in)
	}

	assert.Equal(t, []inventory.Instance{
		{ID: "101", Name: "vm-a", Zone: "z1", Status: "RUNNING"},
		{ID: "102", Name: "vm-b", Zone: "z1", Status: "TERMINATED"},
	}, got)
	assert.Equal(t, []string{"scheduling.preemptible = true", "scheduling.preemptible = true"}, filters)
}

func TestListInstancesStopsEarly(t *testing.T) {
	calls := 0
	opts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, `{
			"items": [{"id": "1", "name": "a"}, {"id": "2", "name": "b"}],
			"nextPageToken": "more"
		}`)
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	for range c.ListInstances(context.Background(), "p1", "z1", "") {
		break
	}
	assert.Equal(t, 1, calls)
}

func TestListInstancesRestarts(t *testing.T) {
	var tokens []string
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)
		if token == "" {
			writeJSON(w, http.StatusOK, `{"items": [{"id": "1", "name": "a"}], "nextPageToken": "p2"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"items": [{"id": "2", "name": "b"}]}`)
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	seq := c.ListInstances(context.Background(), "p1", "z1", "")
	for range 2 {
		var names []string
		for in, err := range seq {
			require.NoError(t, err)
			names = append(names, in.Name)
		}
		assert.Equal(t, []string{"a", "b"}, names)
	}
	assert.Equal(t, []string{"", "p2", "", "p2"}, tokens)
}

func TestListInstancesError(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`)
	})

	c, err := NewCompute(context.Background(), opts)
	require.NoError(t, err)

	var errs []error
	for _, err := range c.ListInstances(context.Background(), "p1", "z1", "") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrCodeUnauthorized, errors.CodeOf(errs[0]))
}

func TestGetCluster(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/projects/p1/locations/us-east4/clusters/prod") {
			writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"cluster not found"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{
			"name": "prod",
			"status": "RUNNING",
			"location": "us-east4",
			"endpoint": "34.1.2.3"
		}`)
	})

	c, err := NewClusters(context.Background(), opts)
	require.NoError(t, err)

	cl, err := c.GetCluster(context.Background(), inventory.ClusterRef{Project: "p1", Location: "us-east4", Cluster: "prod"})
	require.NoError(t, err)
	assert.Equal(t, inventory.Cluster{Name: "prod", Status: "RUNNING", Location: "us-east4", Endpoint: "34.1.2.3"}, cl)

	_, err = c.GetCluster(context.Background(), inventory.ClusterRef{Project: "p1", Location: "us-east4", Cluster: "gone"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestListClusters(t *testing.T) {
	opts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/projects/p1/locations/us-east4/clusters"):
			writeJSON(w, http.StatusOK, `{
				"clusters": [
					{"name": "prod", "status": "RUNNING", "location": "us-east4", "endpoint": "34.1.2.3"},
					{"name": "batch", "status": "PROVISIONING", "location": "us-east4", "endpoint": "34.1.2.4"}
				],
				"missingZones": ["us-east4-c"]
			}`)
		case strings.HasSuffix(r.URL.Path, "/projects/p1/locations/us-west1/clusters"):
			writeJSON(w, http.StatusOK, `{}`)
		default:
			writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`)
		}
	})

	c, err := NewClusters(context.Background(), opts)
	require.NoError(t, err)

	got, err := c.ListClusters(context.Background(), "p1", "us-east4")
	require.NoError(t, err)
	assert.Equal(t, []inventory.Cluster{
		{Name: "prod", Status: "RUNNING", Location: "us-east4", Endpoint: "34.1.2.3"},
		{Name: "batch", Status: "PROVISIONING", Location: "us-east4", Endpoint: "34.1.2.4"},
	}, got)

	got, err = c.ListClusters(context.Background(), "p1", "us-west1")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.ListClusters(context.Background(), "p2", "us-east4")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnauthorized, errors.CodeOf(err))
}
