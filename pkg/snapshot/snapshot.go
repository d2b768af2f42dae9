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

// Package snapshot computes where a snapshot is written and publishes it.
//
// A snapshot lives at <yyyy-MM-dd>/<region>/<label>.csv, using the local
// calendar date of the run. Publishing replaces any object already at that
// path by deleting it and then creating the new one. The two steps are not
// atomic: a failure between them leaves the path empty, and concurrent runs
// against the same path race with the last writer winning.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store"
)

// DateLayout is the layout of the date segment of a snapshot path.
const DateLayout = "2006-01-02"

// Path returns the object path for a snapshot taken on date.
func Path(date time.Time, region, label string) string {
	return fmt.Sprintf("%s/%s/%s.csv", date.Format(DateLayout), region, label)
}

// Publisher writes snapshots to an object store.
type Publisher struct {
	Store  store.ObjectStore
	Bucket string

	// Clock supplies today's date. Defaults to the real clock.
	Clock clock.PassiveClock

	// Timeout bounds one publish. Defaults to defaults.PublishTimeout.
	Timeout time.Duration
}

// NewPublisher returns a publisher writing into bucket of s.
func NewPublisher(s store.ObjectStore, bucket string) *Publisher {
	return &Publisher{Store: s, Bucket: bucket, Clock: clock.RealClock{}, Timeout: defaults.PublishTimeout}
}

// Path returns the path a snapshot for region and label is written to today.
func (p *Publisher) Path(region, label string) string {
	c := p.Clock
	if c == nil {
		c = clock.RealClock{}
	}
	return Path(c.Now(), region, label)
}

// Publish replaces the snapshot for region and label with content and
// returns the path written. Any failure is reported as ErrCodePublish.
func (p *Publisher) Publish(ctx context.Context, region, label string, content []byte) (string, error) {
	path := p.Path(region, label)
	if err := p.Put(ctx, path, content); err != nil {
		return path, err
	}
	return path, nil
}

// Put deletes any object at path and creates a new one holding content.
func (p *Publisher) Put(ctx context.Context, path string, content []byte) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaults.PublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errCtx := map[string]any{"bucket": p.Bucket, "path": path}

	exists, err := p.Store.Exists(ctx, p.Bucket, path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodePublish, "failed to check existing snapshot", err, errCtx)
	}
	if exists {
		slog.Debug("replacing existing snapshot", "bucket", p.Bucket, "path", path)
		if err := p.Store.Delete(ctx, p.Bucket, path); err != nil {
			return errors.WrapWithContext(errors.ErrCodePublish, "failed to delete existing snapshot", err, errCtx)
		}
	}
	if err := p.Store.Create(ctx, p.Bucket, path, content); err != nil {
		return errors.WrapWithContext(errors.ErrCodePublish, "failed to create snapshot", err, errCtx)
	}

	slog.Info("snapshot published", "bucket", p.Bucket, "path", path, "bytes", len(content))
	return nil
}
