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

package table

import (
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

// Sample is the outcome of sampling one catalog metric for a resource.
type Sample struct {
	Metric string
	Value  float64
	Err    error
}

// InstanceRow renders instance:<name>,zone:<zone>,status:<status> followed by
// one <key>:<value> field per sample in the order given. A failed sample keeps
// its column with an empty value.
func InstanceRow(in inventory.Instance, prefix string, samples []Sample) *Row {
	r := NewRow().
		AddPair("instance", in.Name).
		AddPair("zone", in.Zone).
		AddPair("status", in.Status)
	for _, s := range samples {
		v := ""
		if s.Err == nil {
			v = FormatValue(s.Value)
		}
		r.AddPair(MetricKey(s.Metric, prefix), v)
	}
	return r
}

// PodRow renders the pod name followed by name, cpu, memory and
// ephemeral-storage requests of each container in spec order.
func PodRow(p inventory.Pod) *Row {
	return podRow(p, func(c inventory.Container) inventory.Quantities { return c.Requests })
}

// PodLimitsRow renders the pod like PodRow with container limits in place
// of requests.
func PodLimitsRow(p inventory.Pod) *Row {
	return podRow(p, func(c inventory.Container) inventory.Quantities { return c.Limits })
}

func podRow(p inventory.Pod, pick func(inventory.Container) inventory.Quantities) *Row {
	r := NewRow(p.Name)
	for _, c := range p.Containers {
		q := pick(c)
		r.Add(c.Name).
			Add(FormatQuantity(q.CPU)).
			Add(FormatQuantity(q.Memory)).
			Add(FormatQuantity(q.EphemeralStorage))
	}
	return r
}

// NodeRow renders the node name, cpu, memory and ephemeral-storage capacity,
// and allocatable ephemeral storage.
func NodeRow(n inventory.Node) *Row {
	return NewRow(
		n.Name,
		FormatQuantity(n.Capacity.CPU),
		FormatQuantity(n.Capacity.Memory),
		FormatQuantity(n.Capacity.EphemeralStorage),
		FormatQuantity(n.Allocatable.EphemeralStorage),
	)
}

// ClusterRow renders the descriptor of a managed cluster.
func ClusterRow(c inventory.Cluster) *Row {
	return NewRow().
		AddPair("ClusterName", c.Name).
		AddPair("ClusterStatus", c.Status).
		AddPair("ClusterLocation", c.Location).
		AddPair("ClusterEndpoint", c.Endpoint)
}
