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

// Package gce discovers zones, compute instances and managed clusters through
// the Compute Engine and Kubernetes Engine REST APIs.
package gce

import (
	"context"
	"iter"
	"log/slog"
	"path"
	"strconv"

	compute "google.golang.org/api/compute/v1"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

var _ inventory.ComputeLister = (*Compute)(nil)

// Compute lists zones and instances.
type Compute struct {
	svc *compute.Service
}

// NewCompute creates a Compute Engine lister.
func NewCompute(ctx context.Context, opts gcp.Options) (*Compute, error) {
	o, err := opts.ClientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := compute.NewService(ctx, o...)
	if err != nil {
		return nil, gcp.Classify(err, "compute.NewService", nil)
	}
	return &Compute{svc: svc}, nil
}

// ListZones returns the zone names of region. The API reports zones as URLs;
// only the last path segment is kept.
func (c *Compute) ListZones(ctx context.Context, project, region string) ([]string, error) {
	r, err := c.svc.Regions.Get(project, region).Context(ctx).Do()
	if err != nil {
		return nil, gcp.Classify(err, "regions.get", map[string]any{
			"project": project,
			"region":  region,
		})
	}

	zones := make([]string, 0, len(r.Zones))
	for _, z := range r.Zones {
		zones = append(zones, path.Base(z))
	}
	slog.Debug("listed zones", slog.String("region", region), slog.Int("count", len(zones)))
	return zones, nil
}

// ListInstances pages through the instances of zone matching filter.
func (c *Compute) ListInstances(ctx context.Context, project, zone, filter string) iter.Seq2[inventory.Instance, error] {
	return func(yield func(inventory.Instance, error) bool) {
		token := ""
		for {
			call := c.svc.Instances.List(project, zone).Context(ctx)
			if filter != "" {
				call = call.Filter(filter)
			}
			if token != "" {
				call = call.PageToken(token)
			}

			list, err := call.Do()
			if err != nil {
				yield(inventory.Instance{}, gcp.Classify(err, "instances.list", map[string]any{
					"project": project,
					"zone":    zone,
					"filter":  filter,
				}))
				return
			}

			for _, in := range list.Items {
				if !yield(toInstance(in, zone), nil) {
					return
				}
			}

			if list.NextPageToken == "" {
				return
			}
			token = list.NextPageToken
		}
	}
}

func toInstance(in *compute.Instance, zone string) inventory.Instance {
	if in.Zone != "" {
		zone = path.Base(in.Zone)
	}
	return inventory.Instance{
		ID:     strconv.FormatUint(in.Id, 10),
		Name:   in.Name,
		Zone:   zone,
		Status: in.Status,
	}
}
