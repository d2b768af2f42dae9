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
	"log/slog"

	container "google.golang.org/api/container/v1"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

var _ inventory.ClusterLister = (*Clusters)(nil)

// Clusters fetches Kubernetes Engine cluster descriptors.
type Clusters struct {
	svc *container.Service
}

// NewClusters creates a Kubernetes Engine cluster getter.
func NewClusters(ctx context.Context, opts gcp.Options) (*Clusters, error) {
	o, err := opts.ClientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := container.NewService(ctx, o...)
	if err != nil {
		return nil, gcp.Classify(err, "container.NewService", nil)
	}
	return &Clusters{svc: svc}, nil
}

// GetCluster returns the current descriptor of the referenced cluster.
func (c *Clusters) GetCluster(ctx context.Context, ref inventory.ClusterRef) (inventory.Cluster, error) {
	cl, err := c.svc.Projects.Locations.Clusters.Get(ref.Name()).Context(ctx).Do()
	if err != nil {
		return inventory.Cluster{}, gcp.Classify(err, "clusters.get", map[string]any{
			"cluster": ref.Name(),
		})
	}
	return toCluster(cl), nil
}

// ListClusters returns every cluster in location. Zones the API could not
// reach are logged; the clusters it did return are kept.
func (c *Clusters) ListClusters(ctx context.Context, project, location string) ([]inventory.Cluster, error) {
	parent := inventory.ClusterRef{Project: project, Location: location}.Parent()
	resp, err := c.svc.Projects.Locations.Clusters.List(parent).Context(ctx).Do()
	if err != nil {
		return nil, gcp.Classify(err, "clusters.list", map[string]any{
			"parent": parent,
		})
	}
	if len(resp.MissingZones) > 0 {
		slog.Warn("cluster listing incomplete", "parent", parent, "missingZones", resp.MissingZones)
	}

	clusters := make([]inventory.Cluster, 0, len(resp.Clusters))
	for _, cl := range resp.Clusters {
		clusters = append(clusters, toCluster(cl))
	}
	return clusters, nil
}

func toCluster(cl *container.Cluster) inventory.Cluster {
	return inventory.Cluster{
		Name:     cl.Name,
		Status:   cl.Status,
		Location: cl.Location,
		Endpoint: cl.Endpoint,
	}
}
