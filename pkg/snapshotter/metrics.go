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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "healthsnap_run_duration_seconds",
			Help:    "Time taken by one complete batch pass",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_run_total",
			Help: "Total number of batch passes",
		},
		[]string{"status"}, // success or error
	)

	collectDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthsnap_collect_duration_seconds",
			Help:    "Time taken to collect the rows of one family",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"family"},
	)

	snapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "healthsnap_snapshot_rows",
			Help: "Number of rows in the last published snapshot",
		},
		[]string{"family"},
	)

	providerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_provider_failures_total",
			Help: "Provider failures tolerated while collecting",
		},
		[]string{"family", "operation", "code"},
	)

	publishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_publish_total",
			Help: "Total number of snapshot publish attempts",
		},
		[]string{"family", "status"}, // success or error
	)
)
