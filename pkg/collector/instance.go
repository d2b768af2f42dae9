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
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/table"
)

// InstanceCollector renders one row per instance in the region, sampling
// every catalog metric for each instance.
type InstanceCollector struct {
	Compute  inventory.ComputeLister
	Resolver *metric.Resolver
	Sampler  *metric.Sampler

	Project string
	Region  string
	Filter  string
	Prefix  string
	Metrics []string

	// CallTimeout bounds each provider call. Defaults to defaults.ProviderCallTimeout.
	CallTimeout time.Duration
}

// Family implements Collector.
func (c *InstanceCollector) Family() config.Family {
	return config.FamilyInstance
}

// Collect walks zones, then instances per zone, then metrics per instance.
func (c *InstanceCollector) Collect(ctx context.Context) (*Result, error) {
	res := newResult(c.Family())

	zones, err := c.listZones(ctx)
	if err != nil {
		res.tolerate(Failure{Operation: "listZones", Resource: c.Region, Err: err})
		return res, ctx.Err()
	}

	for _, zone := range zones {
		if err := c.collectZone(ctx, zone, res); err != nil {
			return res, err
		}
	}

	slog.Info("instance rows collected", "region", c.Region, "zones", len(zones), "rows", res.Table.Len())
	return res, nil
}

func (c *InstanceCollector) listZones(ctx context.Context) ([]string, error) {
	ctx, cancel := callTimeout(ctx, c.CallTimeout)
	defer cancel()
	return c.Compute.ListZones(ctx, c.Project, c.Region)
}

func (c *InstanceCollector) collectZone(ctx context.Context, zone string, res *Result) error {
	// Sampling happens between page fetches, so the listing is not bounded by
	// a single call timeout.
	for in, err := range c.Compute.ListInstances(ctx, c.Project, zone, c.Filter) {
		if err != nil {
			res.tolerate(Failure{Operation: "listInstances", Resource: zone, Err: err})
			break
		}
		samples := c.sampleAll(ctx, in, res)
		res.Table.Append(table.InstanceRow(in, c.Prefix, samples))
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (c *InstanceCollector) sampleAll(ctx context.Context, in inventory.Instance, res *Result) []table.Sample {
	target := metric.InstanceTarget(c.Project, in.ID, in.Zone)
	samples := make([]table.Sample, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		v, err := c.sample(ctx, target, m)
		if err != nil {
			res.tolerate(Failure{Operation: "sample", Resource: in.Name, Metric: m, Err: err})
		}
		samples = append(samples, table.Sample{Metric: m, Value: v, Err: err})
	}
	return samples
}

func (c *InstanceCollector) sample(ctx context.Context, target metric.Target, m string) (float64, error) {
	ctx, cancel := callTimeout(ctx, c.CallTimeout)
	defer cancel()

	policy, err := c.Resolver.Resolve(ctx, c.Project, m)
	if err != nil {
		return 0, err
	}
	return c.Sampler.Sample(ctx, target, m, policy)
}
