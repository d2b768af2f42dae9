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

// Package config holds the run configuration of a healthsnap batch pass.
//
// Values come from an optional YAML file (Load), are overridden by command
// line flags, and are checked once by Validate before any provider is called.
//
//	project: my-project
//	region: us-east4
//	cluster: prod-1
//	namespace: default
//	bucket: gs://health-snapshots
//	families: [instance, pod, node, cluster]
//	instanceFilter: scheduling.preemptible = true
//	metrics:
//	  - compute.googleapis.com/instance/cpu/utilization
//	timeSeries:
//	  backend: monitoring
package config
