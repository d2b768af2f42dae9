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

// Package snapshotter runs one batch pass: for every selected resource family
// it collects the rows and publishes them as that family's snapshot.
//
// Families are processed one after another in a fixed order
// (instance, pod, node, cluster). Provider failures during collection are
// tolerated and counted; a family whose collector cannot even be created is
// published with no rows. A publish failure ends the pass immediately with an
// error carrying errors.ErrCodePublish; families published before it stay
// published.
//
// When the deadline of ctx expires mid-collection, the rows gathered so far
// are still published and the remaining families are attempted with whatever
// their collectors return. Cancellation ends the pass without publishing.
//
// # Usage
//
//	pub := snapshot.NewPublisher(objectStore, bucket)
//	s := snapshotter.New(cfg, collector.NewDefaultFactory(cfg), pub)
//	report, err := s.Run(ctx)
//
// # Metrics
//
// The pass records Prometheus metrics in the default registry:
//
//	healthsnap_run_duration_seconds
//	healthsnap_run_total{status}
//	healthsnap_collect_duration_seconds{family}
//	healthsnap_snapshot_rows{family}
//	healthsnap_provider_failures_total{family,operation,code}
//	healthsnap_publish_total{family,status}
//
// When Config.Pushgateway is set they are pushed once the pass ends.
// A push failure is logged and does not fail the pass.
package snapshotter
