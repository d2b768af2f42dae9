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

package metric

import (
	"context"
	"log/slog"

	cache "github.com/Code-Hex/go-generics-cache"
)

// DescriptorSource looks up the kind of a metric.
type DescriptorSource interface {
	MetricKind(ctx context.Context, project, metric string) (Kind, error)
}

type resolution struct {
	kind   Kind
	policy Policy
	err    error
}

// Resolver maps metric names to aggregation policies, asking the source at
// most once per (project, metric) for the lifetime of the Resolver.
// A Resolver is meant to live for exactly one run.
type Resolver struct {
	source DescriptorSource
	cache  *cache.Cache[string, resolution]
}

// NewResolver returns a Resolver backed by source. The cache janitor stops
// when ctx is done.
func NewResolver(ctx context.Context, source DescriptorSource) *Resolver {
	return &Resolver{
		source: source,
		cache:  cache.NewContext[string, resolution](ctx),
	}
}

// Resolve returns the policy for metric. A lookup failure is remembered and
// returned again for later calls with the same metric.
func (r *Resolver) Resolve(ctx context.Context, project, metric string) (Policy, error) {
	key := project + "|" + metric
	if res, ok := r.cache.Get(key); ok {
		return res.policy, res.err
	}

	var res resolution
	kind, err := r.source.MetricKind(ctx, project, metric)
	if err != nil {
		res.err = err
	} else {
		res.kind = kind
		res.policy = PolicyFor(kind)
		slog.Debug("resolved metric descriptor",
			slog.String("metric", metric),
			slog.String("kind", string(kind)),
			slog.String("aligner", string(res.policy.Aligner)))
	}
	r.cache.Set(key, res)

	return res.policy, res.err
}
