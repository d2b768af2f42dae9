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
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		kind    Kind
		want    Policy
		aligned bool
	}{
		{KindGauge, Policy{AlignmentPeriod: 60 * time.Second, Aligner: AlignerMean}, true},
		{KindCumulative, Policy{AlignmentPeriod: 60 * time.Second, Aligner: AlignerSum}, true},
		{KindOther, Policy{}, false},
		{Kind("DELTA"), Policy{}, false},
		{Kind(""), Policy{}, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := PolicyFor(tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.aligned, got.Aligned())
		})
	}
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindGauge, ParseKind("GAUGE"))
	assert.Equal(t, KindGauge, ParseKind("gauge"))
	assert.Equal(t, KindCumulative, ParseKind("CUMULATIVE"))
	assert.Equal(t, KindOther, ParseKind("DELTA"))
	assert.Equal(t, KindOther, ParseKind("METRIC_KIND_UNSPECIFIED"))
	assert.Equal(t, KindOther, ParseKind(""))
}

type fakeDescriptors struct {
	kinds map[string]Kind
	calls map[string]int
}

func (f *fakeDescriptors) MetricKind(_ context.Context, _, metric string) (Kind, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[metric]++
	k, ok := f.kinds[metric]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "no descriptor for "+metric)
	}
	return k, nil
}

func TestResolverCachesPerMetric(t *testing.T) {
	src := &fakeDescriptors{kinds: map[string]Kind{
		"cpu/utilization": KindGauge,
		"disk/read_bytes": KindCumulative,
	}}
	ctx := context.Background()
	r := NewResolver(ctx, src)

	for range 3 {
		p, err := r.Resolve(ctx, "p1", "cpu/utilization")
		require.NoError(t, err)
		assert.Equal(t, AlignerMean, p.Aligner)

		p, err = r.Resolve(ctx, "p1", "disk/read_bytes")
		require.NoError(t, err)
		assert.Equal(t, AlignerSum, p.Aligner)

		_, err = r.Resolve(ctx, "p1", "missing")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	}

	assert.Equal(t, map[string]int{"cpu/utilization": 1, "disk/read_bytes": 1, "missing": 1}, src.calls)
}

func TestResolverAfterRunContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeDescriptors{kinds: map[string]Kind{"cpu/utilization": KindGauge}}
	r := NewResolver(ctx, src)

	_, err := r.Resolve(ctx, "p1", "cpu/utilization")
	require.NoError(t, err)
	cancel()

	p, err := r.Resolve(context.Background(), "p1", "cpu/utilization")
	require.NoError(t, err)
	assert.Equal(t, AlignerMean, p.Aligner)
	assert.Equal(t, 1, src.calls["cpu/utilization"])
}

type fakeSeries struct {
	series []Series
	err    error
	last   Query
}

func (f *fakeSeries) ListTimeSeries(_ context.Context, q Query) ([]Series, error) {
	f.last = q
	return f.series, f.err
}

func TestSamplerMaxAcrossSeries(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeSeries{series: []Series{
		{Points: []Point{{Value: 0.1}, {Value: 0.42}}},
		{Points: []Point{{Value: 0.3}}},
	}}
	s := &Sampler{Source: src, Clock: clocktesting.NewFakePassiveClock(now)}

	got, err := s.Sample(context.Background(), InstanceTarget("p1", "101", "z1"), "cpu/utilization", PolicyFor(KindGauge))
	require.NoError(t, err)
	assert.InDelta(t, 0.42, got, 1e-9)

	assert.Equal(t, "p1", src.last.Project)
	assert.Equal(t, "cpu/utilization", src.last.Metric)
	assert.Equal(t, now, src.last.End)
	assert.Equal(t, now.Add(-5*time.Minute), src.last.Start)
	assert.Equal(t, []Label{{"instance_id", "101"}, {"zone", "z1"}}, src.last.Labels)
	assert.Equal(t, AlignerMean, src.last.Policy.Aligner)
}

func TestSamplerEmptyResultIsZero(t *testing.T) {
	for name, series := range map[string][]Series{
		"no series":        nil,
		"series no points": {{}, {Points: nil}},
	} {
		t.Run(name, func(t *testing.T) {
			s := &Sampler{Source: &fakeSeries{series: series}}
			got, err := s.Sample(context.Background(), InstanceTarget("p", "1", "z"), "m", Policy{})
			require.NoError(t, err)
			assert.Equal(t, 0.0, got)
		})
	}
}

func TestSamplerNegativeValues(t *testing.T) {
	s := &Sampler{Source: &fakeSeries{series: []Series{{Points: []Point{{Value: -3}, {Value: -1}}}}}}
	got, err := s.Sample(context.Background(), Target{}, "m", Policy{})
	require.NoError(t, err)
	assert.Equal(t, -1.0, got)
}

func TestSamplerCustomWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeSeries{}
	s := &Sampler{Source: src, Clock: clocktesting.NewFakePassiveClock(now), Window: time.Minute}
	_, err := s.Sample(context.Background(), Target{}, "m", Policy{})
	require.NoError(t, err)
	assert.Equal(t, now.Add(-time.Minute), src.last.Start)
}

func TestSamplerPropagatesErrors(t *testing.T) {
	cause := errors.New(errors.ErrCodeRateLimitExceeded, "quota")
	s := &Sampler{Source: &fakeSeries{err: cause}}
	got, err := s.Sample(context.Background(), Target{}, "m", Policy{})
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, 0.0, got)
}
