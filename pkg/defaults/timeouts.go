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

import "time"

// Sampling parameters.
const (
	// LookbackWindow is the span of data queried when sampling a metric.
	LookbackWindow = 5 * time.Minute

	// AlignmentPeriod is the bucket width used for aligned (GAUGE, CUMULATIVE) metrics.
	AlignmentPeriod = 60 * time.Second

	// SamplerQPS is the default pace of time-series queries. Zero disables pacing.
	SamplerQPS = 10
)

// Provider call timeouts.
const (
	// ProviderCallTimeout bounds a single discovery or sampling call.
	ProviderCallTimeout = 30 * time.Second

	// PublishTimeout bounds the get/delete/create sequence of one snapshot.
	PublishTimeout = 60 * time.Second

	// PushTimeout bounds the optional push of run metrics to a Pushgateway.
	PushTimeout = 10 * time.Second

	// CLIRunTimeout is the default overall deadline of a snapshot command.
	CLIRunTimeout = 30 * time.Minute
)

// Kubernetes client settings.
const (
	// K8sClientQPS is the client-go request rate used for discovery.
	K8sClientQPS = 20

	// K8sClientBurst is the client-go burst size used for discovery.
	K8sClientBurst = 40
)
