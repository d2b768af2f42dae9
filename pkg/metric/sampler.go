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
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

// Label is a resource label constraint of a time-series query.
type Label struct {
	Key   string
	Value string
}

// Target identifies the monitored resource a metric is sampled for.
type Target struct {
	Project string
	Labels  []Label
}

// InstanceTarget returns the target of a compute instance in a zone.
func InstanceTarget(project, instanceID, zone string) Target {
	return Target{
		Project: project,
		Labels: []Label{
			{Key: "instance_id", Value: instanceID},
			{Key: "zone", Value: zone},
		},
	}
}

// Query is one time-series request.
type Query struct {
	Project string
	Metric  string
	Labels  []Label
	Start   time.Time
	End     time.Time
	Policy  Policy
}

// Point is a single time-series value.
type Point struct {
	Time  time.Time
	Value float64
}

// Series is one returned time series.
type Series struct {
	Points []Point
}

// TimeSeriesSource runs time-series queries. It may return any number of
// series for a query, including none.
type TimeSeriesSource interface {
	ListTimeSeries(ctx context.Context, q Query) ([]Series, error)
}

// Sampler reduces a metric's recent time series to one value.
type Sampler struct {
	Source TimeSeriesSource

	// Clock supplies the end of the lookback window. Defaults to the real clock.
	Clock clock.PassiveClock

	// Window is the lookback span. Defaults to defaults.LookbackWindow.
	Window time.Duration

	// Limiter paces queries when set.
	Limiter *rate.Limiter
}

// Sample queries metric for target over the window ending now and returns
// the largest point value across all series, or 0 when none were returned.
func (s *Sampler) Sample(ctx context.Context, target Target, metric string, policy Policy) (float64, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return 0, errors.WrapWithContext(errors.ErrCodeTimeout, "waiting for query slot", err,
				map[string]any{"metric": metric})
		}
	}

	clk := s.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	window := s.Window
	if window <= 0 {
		window = defaults.LookbackWindow
	}
	end := clk.Now()

	series, err := s.Source.ListTimeSeries(ctx, Query{
		Project: target.Project,
		Metric:  metric,
		Labels:  target.Labels,
		Start:   end.Add(-window),
		End:     end,
		Policy:  policy,
	})
	if err != nil {
		return 0, err
	}
	return MaxValue(series), nil
}

// MaxValue returns the largest point value across series, or 0 for no points.
func MaxValue(series []Series) float64 {
	values := lo.FlatMap(series, func(s Series, _ int) []float64 {
		return lo.Map(s.Points, func(p Point, _ int) float64 { return p.Value })
	})
	return lo.Max(values)
}
