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

// Package prometheus implements metric descriptor lookup and time-series
// queries against a Prometheus compatible HTTP API, for deployments that
// mirror cloud metrics into Prometheus instead of reading Cloud Monitoring.
package prometheus

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	promv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric"
)

// RawStep is the query resolution used when a metric has no alignment policy.
const RawStep = 15 * time.Second

var (
	_ metric.DescriptorSource = (*Client)(nil)
	_ metric.TimeSeriesSource = (*Client)(nil)

	invalidName = regexp.MustCompile(`[^a-zA-Z0-9_:]`)
)

// Options configures the Prometheus client.
type Options struct {
	Address         string
	BearerTokenFile string
	RoundTripper    http.RoundTripper
}

// Client queries a Prometheus server.
type Client struct {
	api promv1.API
}

// New creates a Prometheus client for opts.Address.
func New(opts Options) (*Client, error) {
	if opts.Address == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "prometheus address is required")
	}
	token, err := readTokenFile(opts.BearerTokenFile)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeUnauthorized, "reading prometheus bearer token", err,
			map[string]any{"path": opts.BearerTokenFile})
	}
	rt := opts.RoundTripper
	if rt == nil {
		rt = api.DefaultRoundTripper
	}
	client, err := api.NewClient(api.Config{
		Address: opts.Address,
		RoundTripper: &bearerAuthRoundTripper{
			parent: rt,
			token:  token,
		},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "creating prometheus client", err)
	}
	return &Client{api: promv1.NewAPI(client)}, nil
}

// MetricName converts a cloud metric type into a Prometheus metric name.
func MetricName(metricType string) string {
	return invalidName.ReplaceAllString(metricType, "_")
}

// MetricKind looks up the metadata for metricType. Gauges map to KindGauge,
// counters to KindCumulative, anything else to KindOther.
func (c *Client) MetricKind(ctx context.Context, _ string, metricType string) (metric.Kind, error) {
	name := MetricName(metricType)
	md, err := c.api.Metadata(ctx, name, "1")
	if err != nil {
		return "", classify(err, "metadata", map[string]any{"metric": metricType})
	}
	entries := md[name]
	if len(entries) == 0 {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "metric metadata not found", map[string]any{
			"metric": metricType,
		})
	}
	switch entries[0].Type {
	case promv1.MetricTypeGauge:
		return metric.KindGauge, nil
	case promv1.MetricTypeCounter:
		return metric.KindCumulative, nil
	default:
		return metric.KindOther, nil
	}
}

// ListTimeSeries runs a range query for q and returns one series per result stream.
func (c *Client) ListTimeSeries(ctx context.Context, q metric.Query) ([]metric.Series, error) {
	step := RawStep
	if q.Policy.Aligned() {
		step = q.Policy.AlignmentPeriod
	}
	value, _, err := c.api.QueryRange(ctx, Expr(q), promv1.Range{Start: q.Start, End: q.End, Step: step})
	if err != nil {
		return nil, classify(err, "query_range", map[string]any{"metric": q.Metric})
	}
	matrix, ok := value.(model.Matrix)
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeInternal, fmt.Sprintf("unexpected result type %T", value), map[string]any{
			"metric": q.Metric,
		})
	}

	out := make([]metric.Series, 0, len(matrix))
	for _, stream := range matrix {
		var s metric.Series
		for _, p := range stream.Values {
			s.Points = append(s.Points, metric.Point{Time: p.Timestamp.Time(), Value: float64(p.Value)})
		}
		out = append(out, s)
	}
	return out, nil
}

// Expr renders the PromQL expression for q. Aligned gauges are averaged and
// aligned counters are summed over the alignment period.
func Expr(q metric.Query) string {
	matchers := make([]string, 0, len(q.Labels))
	for _, l := range q.Labels {
		matchers = append(matchers, fmt.Sprintf("%s=%q", MetricName(l.Key), l.Value))
	}
	sort.Strings(matchers)
	sel := MetricName(q.Metric)
	if len(matchers) > 0 {
		sel += "{" + strings.Join(matchers, ",") + "}"
	}
	if !q.Policy.Aligned() {
		return sel
	}
	rng := model.Duration(q.Policy.AlignmentPeriod).String()
	switch q.Policy.Aligner {
	case metric.AlignerSum:
		return fmt.Sprintf("sum_over_time(%s[%s])", sel, rng)
	default:
		return fmt.Sprintf("avg_over_time(%s[%s])", sel, rng)
	}
}

func classify(err error, op string, ctx map[string]any) error {
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["operation"] = op

	code := errors.ErrCodeInternal
	var apiErr *promv1.Error
	var netErr net.Error
	switch {
	case stderrors.As(err, &apiErr):
		switch apiErr.Type {
		case promv1.ErrBadData, promv1.ErrClient:
			code = errors.ErrCodeInvalidRequest
		case promv1.ErrTimeout, promv1.ErrCanceled:
			code = errors.ErrCodeTimeout
		case promv1.ErrServer, promv1.ErrBadResponse:
			code = errors.ErrCodeUnavailable
		}
	case stderrors.Is(err, context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	case stderrors.As(err, &netErr):
		code = errors.ErrCodeUnavailable
		if netErr.Timeout() {
			code = errors.ErrCodeTimeout
		}
	}
	return errors.WrapWithContext(code, "prometheus "+op+" failed", err, ctx)
}

type bearerAuthRoundTripper struct {
	parent http.RoundTripper
	token  string
}

func (rt *bearerAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+rt.token)
	}
	return rt.parent.RoundTrip(req)
}

func readTokenFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
