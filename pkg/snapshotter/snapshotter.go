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
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/samber/lo"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/collector"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/config"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/snapshot"
)

// JobName is the Pushgateway job the metrics are grouped under.
const JobName = "healthsnap"

// Published describes one published snapshot.
type Published struct {
	Family   config.Family
	Label    string
	Path     string
	Rows     int
	Failures int

	// Partial is set when the run deadline expired while collecting, so only
	// the rows gathered before it were published.
	Partial bool
}

// Report summarizes a batch pass.
type Report struct {
	RunID     string
	Published []Published
}

// Snapshotter runs batch passes.
type Snapshotter struct {
	Config    *config.Config
	Factory   collector.Factory
	Publisher *snapshot.Publisher

	// Clock times the pass. Defaults to the real clock.
	Clock clock.PassiveClock

	// Gatherer supplies the metrics pushed to the Pushgateway.
	// Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// New returns a Snapshotter for cfg.
func New(cfg *config.Config, factory collector.Factory, pub *snapshot.Publisher) *Snapshotter {
	return &Snapshotter{
		Config:    cfg,
		Factory:   factory,
		Publisher: pub,
		Clock:     clock.RealClock{},
		Gatherer:  prometheus.DefaultGatherer,
	}
}

// Families returns the selected families in publishing order.
func (s *Snapshotter) Families() []config.Family {
	return lo.Filter(config.SupportedFamilies(), func(f config.Family, _ int) bool {
		return s.Config.Enabled(f)
	})
}

// Run collects and publishes every selected family.
func (s *Snapshotter) Run(ctx context.Context) (*Report, error) {
	clk := s.clk()

	report := &Report{RunID: uuid.NewString()}
	log := slog.With("run_id", report.RunID, "region", s.Config.Region)
	log.Info("starting snapshot run", "families", s.Families())

	start := clk.Now()
	err := s.run(ctx, log, report)

	runDuration.Observe(clk.Since(start).Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	runTotal.WithLabelValues(status).Inc()

	s.push(ctx, log, report.RunID)

	if err != nil {
		log.Error("snapshot run failed", errors.Attrs(err)...)
		return report, err
	}
	log.Info("snapshot run complete", "published", len(report.Published), "duration", clk.Since(start).String())
	return report, nil
}

func (s *Snapshotter) clk() clock.PassiveClock {
	if s.Clock == nil {
		return clock.RealClock{}
	}
	return s.Clock
}

func (s *Snapshotter) run(ctx context.Context, log *slog.Logger, report *Report) error {
	for _, family := range s.Families() {
		p, err := s.runFamily(ctx, log, family)
		if err != nil {
			return err
		}
		report.Published = append(report.Published, p)
	}
	return nil
}

func (s *Snapshotter) runFamily(ctx context.Context, log *slog.Logger, family config.Family) (Published, error) {
	label := s.Config.Label(family)
	p := Published{Family: family, Label: label}
	log = log.With("family", family, "label", label)

	var content []byte
	c, err := s.Factory.Create(ctx, family)
	if err != nil {
		log.Warn("collector unavailable, publishing empty snapshot", errors.Attrs(err)...)
		providerFailures.WithLabelValues(string(family), "create", string(errors.CodeOf(err))).Inc()
		p.Failures++
	} else {
		start := s.clk().Now()
		res, err := c.Collect(ctx)
		collectDuration.WithLabelValues(string(family)).Observe(s.clk().Since(start).Seconds())
		if err != nil {
			if !deadlineExpired(ctx) || res == nil {
				return p, err
			}
			log.Warn("run deadline expired, publishing rows collected so far", "rows", res.Table.Len())
			providerFailures.WithLabelValues(string(family), "collect", string(errors.ErrCodeTimeout)).Inc()
			p.Partial = true
			p.Failures++
		}
		for _, f := range res.Failures {
			providerFailures.WithLabelValues(string(family), f.Operation, string(f.Code())).Inc()
		}
		p.Rows = res.Table.Len()
		p.Failures += len(res.Failures)
		content = res.Table.Bytes()
	}

	pubCtx := ctx
	if deadlineExpired(ctx) {
		// the publisher applies its own timeout
		pubCtx = context.WithoutCancel(ctx)
	}
	path, err := s.Publisher.Publish(pubCtx, s.Config.Region, label, content)
	p.Path = path
	if err != nil {
		publishTotal.WithLabelValues(string(family), "error").Inc()
		return p, err
	}
	publishTotal.WithLabelValues(string(family), "success").Inc()
	snapshotRows.WithLabelValues(string(family)).Set(float64(p.Rows))

	log.Info("family published", "path", path, "rows", p.Rows, "failures", p.Failures, "partial", p.Partial)
	return p, nil
}

// deadlineExpired reports whether ctx ended by reaching its deadline rather
// than by cancellation.
func deadlineExpired(ctx context.Context) bool {
	return stderrors.Is(ctx.Err(), context.DeadlineExceeded)
}

func (s *Snapshotter) push(ctx context.Context, log *slog.Logger, runID string) {
	url := s.Config.Pushgateway
	if url == "" {
		return
	}
	g := s.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaults.PushTimeout)
	defer cancel()

	err := push.New(url, JobName).
		Gatherer(g).
		Grouping("region", s.Config.Region).
		PushContext(ctx)
	if err != nil {
		log.Warn("failed to push metrics", "pushgateway", url, "error", err)
		return
	}
	log.Debug("metrics pushed", "pushgateway", url, "run_id", runID)
}
