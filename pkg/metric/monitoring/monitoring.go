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

// Package monitoring implements metric descriptor lookup and time-series
// queries against the Cloud Monitoring v3 API.
package monitoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	monitoring "google.golang.org/api/monitoring/v3"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric"
)

var (
	_ metric.DescriptorSource = (*Client)(nil)
	_ metric.TimeSeriesSource = (*Client)(nil)
)

// Client queries Cloud Monitoring.
type Client struct {
	svc *monitoring.Service
}

// New creates a Cloud Monitoring client.
func New(ctx context.Context, opts gcp.Options) (*Client, error) {
	o, err := opts.ClientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := monitoring.NewService(ctx, o...)
	if err != nil {
		return nil, gcp.Classify(err, "monitoring.NewService", nil)
	}
	return &Client{svc: svc}, nil
}

// MetricKind returns the kind of the metric descriptor named metric.
func (c *Client) MetricKind(ctx context.Context, project, metricType string) (metric.Kind, error) {
	name := fmt.Sprintf("projects/%s/metricDescriptors/%s", project, metricType)
	md, err := c.svc.Projects.MetricDescriptors.Get(name).Context(ctx).Do()
	if err != nil {
		return "", gcp.Classify(err, "metricDescriptors.get", map[string]any{
			"project": project,
			"metric":  metricType,
		})
	}
	return metric.ParseKind(md.MetricKind), nil
}

// ListTimeSeries runs q and returns every series across all result pages.
func (c *Client) ListTimeSeries(ctx context.Context, q metric.Query) ([]metric.Series, error) {
	call := c.svc.Projects.TimeSeries.List("projects/" + q.Project).
		Filter(Filter(q)).
		IntervalStartTime(q.Start.UTC().Format(time.RFC3339)).
		IntervalEndTime(q.End.UTC().Format(time.RFC3339)).
		View("FULL")
	if q.Policy.Aligned() {
		call = call.
			AggregationAlignmentPeriod(fmt.Sprintf("%ds", int64(q.Policy.AlignmentPeriod/time.Second))).
			AggregationPerSeriesAligner(string(q.Policy.Aligner))
	}

	var out []metric.Series
	err := call.Pages(ctx, func(resp *monitoring.ListTimeSeriesResponse) error {
		for _, ts := range resp.TimeSeries {
			out = append(out, toSeries(ts))
		}
		return nil
	})
	if err != nil {
		return nil, gcp.Classify(err, "timeSeries.list", map[string]any{
			"project": q.Project,
			"metric":  q.Metric,
		})
	}
	return out, nil
}

// Filter renders the monitoring filter selecting q's metric and resource labels.
func Filter(q metric.Query) string {
	parts := []string{fmt.Sprintf("metric.type = %q", q.Metric)}
	for _, l := range q.Labels {
		parts = append(parts, fmt.Sprintf("resource.labels.%s = %q", l.Key, l.Value))
	}
	return strings.Join(parts, " AND ")
}

func toSeries(ts *monitoring.TimeSeries) metric.Series {
	var s metric.Series
	for _, p := range ts.Points {
		v, ok := pointValue(p)
		if !ok {
			continue
		}
		pt := metric.Point{Value: v}
		if p.Interval != nil {
			if t, err := time.Parse(time.RFC3339Nano, p.Interval.EndTime); err == nil {
				pt.Time = t
			}
		}
		s.Points = append(s.Points, pt)
	}
	return s
}

func pointValue(p *monitoring.Point) (float64, bool) {
	if p == nil || p.Value == nil {
		return 0, false
	}
	switch {
	case p.Value.DoubleValue != nil:
		return *p.Value.DoubleValue, true
	case p.Value.Int64Value != nil:
		return float64(*p.Value.Int64Value), true
	case p.Value.BoolValue != nil:
		if *p.Value.BoolValue {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
