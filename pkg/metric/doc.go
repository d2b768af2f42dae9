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

// Package metric resolves aggregation policies for catalog metrics and
// samples time series down to a single value per resource.
//
// # Policies
//
// A metric's kind alone decides how it is aggregated:
//
//	GAUGE       60s alignment, ALIGN_MEAN
//	CUMULATIVE  60s alignment, ALIGN_SUM
//	other       no alignment, raw points
//
// The Resolver looks each metric up once per run through a DescriptorSource
// and caches the outcome, failures included.
//
// # Sampling
//
// The Sampler queries a TimeSeriesSource over the lookback window ending at
// call time and returns the maximum of every point of every returned series,
// or 0 when nothing came back.
//
// Backends live in the monitoring (Cloud Monitoring v3) and prometheus
// (Prometheus HTTP API) subpackages.
package metric
