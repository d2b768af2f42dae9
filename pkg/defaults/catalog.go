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

package defaults

// MetricPrefix is the provider namespace stripped from catalog metric names
// when building instance row keys.
const MetricPrefix = "compute.googleapis.com/instance/"

// InstanceFilter selects the instances listed in each zone.
const InstanceFilter = "scheduling.preemptible = true"

// Snapshot labels, one per resource family.
const (
	LabelInstance = "InstanceHealth"
	LabelPod      = "PODHealth"
	LabelPodLimit = "PODLimits"
	LabelNode     = "NodeHealth"
	LabelCluster  = "ClusterHealth"
)

// Namespace is the namespace whose pods are listed when none is configured.
const Namespace = "default"

// MetricCatalog returns the metrics sampled for every instance, in column order.
// A fresh slice is returned on each call.
func MetricCatalog() []string {
	return []string{
		MetricPrefix + "cpu/utilization",
		MetricPrefix + "memory/balloon/ram_used",
		MetricPrefix + "memory/balloon/ram_size",
		MetricPrefix + "network/received_bytes_count",
		MetricPrefix + "network/sent_bytes_count",
		MetricPrefix + "disk/average_io_latency",
		MetricPrefix + "disk/read_bytes_count",
		MetricPrefix + "disk/write_bytes_count",
	}
}
