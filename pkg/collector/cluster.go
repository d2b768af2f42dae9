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

package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/config"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/table"
)

// ClusterCollector renders the descriptor row of one managed cluster, or of
// every cluster in the location when Ref names no cluster.
type ClusterCollector struct {
	Clusters    inventory.ClusterLister
	Ref         inventory.ClusterRef
	CallTimeout time.Duration
}

// Family implements Collector.
func (c *ClusterCollector) Family() config.Family {
	return config.FamilyCluster
}

// Collect fetches the cluster descriptors.
func (c *ClusterCollector) Collect(ctx context.Context) (*Result, error) {
	res := newResult(c.Family())

	callCtx, cancel := callTimeout(ctx, c.CallTimeout)
	defer cancel()

	if c.Ref.Cluster == "" {
		clusters, err := c.Clusters.ListClusters(callCtx, c.Ref.Project, c.Ref.Location)
		if err != nil {
			res.tolerate(Failure{Operation: "listClusters", Resource: c.Ref.Parent(), Err: err})
			return res, ctx.Err()
		}
		for _, cl := range clusters {
			res.Table.Append(table.ClusterRow(cl))
		}
		slog.Info("cluster rows collected", "location", c.Ref.Location, "rows", res.Table.Len())
		return res, nil
	}

	cl, err := c.Clusters.GetCluster(callCtx, c.Ref)
	if err != nil {
		res.tolerate(Failure{Operation: "getCluster", Resource: c.Ref.Name(), Err: err})
		return res, ctx.Err()
	}
	res.Table.Append(table.ClusterRow(cl))
	return res, nil
}
