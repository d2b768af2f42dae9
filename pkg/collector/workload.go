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

// PodCollector renders one row per pod in a namespace with the resource
// requests of its containers, or their limits when Limits is set.
type PodCollector struct {
	Workloads   inventory.WorkloadLister
	Namespace   string
	Limits      bool
	CallTimeout time.Duration
}

// Family implements Collector.
func (c *PodCollector) Family() config.Family {
	if c.Limits {
		return config.FamilyPodLimits
	}
	return config.FamilyPod
}

// Collect lists the pods of the namespace.
func (c *PodCollector) Collect(ctx context.Context) (*Result, error) {
	res := newResult(c.Family())

	callCtx, cancel := callTimeout(ctx, c.CallTimeout)
	defer cancel()

	pods, err := c.Workloads.ListPods(callCtx, c.Namespace)
	if err != nil {
		res.tolerate(Failure{Operation: "listPods", Resource: c.Namespace, Err: err})
		return res, ctx.Err()
	}
	row := table.PodRow
	if c.Limits {
		row = table.PodLimitsRow
	}
	for _, p := range pods {
		slog.Debug("pod listed", "pod", p.Name, "namespace", p.Namespace, "phase", p.Phase, "containers", len(p.Containers))
		res.Table.Append(row(p))
	}

	slog.Info("pod rows collected", "namespace", c.Namespace, "limits", c.Limits, "rows", res.Table.Len())
	return res, nil
}

// NodeCollector renders one row per cluster node.
type NodeCollector struct {
	Workloads   inventory.WorkloadLister
	CallTimeout time.Duration
}

// Family implements Collector.
func (c *NodeCollector) Family() config.Family {
	return config.FamilyNode
}

// Collect lists the nodes of the cluster.
func (c *NodeCollector) Collect(ctx context.Context) (*Result, error) {
	res := newResult(c.Family())

	callCtx, cancel := callTimeout(ctx, c.CallTimeout)
	defer cancel()

	nodes, err := c.Workloads.ListNodes(callCtx)
	if err != nil {
		res.tolerate(Failure{Operation: "listNodes", Err: err})
		return res, ctx.Err()
	}
	for _, n := range nodes {
		res.Table.Append(table.NodeRow(n))
	}

	slog.Info("node rows collected", "rows", res.Table.Len())
	return res, nil
}
