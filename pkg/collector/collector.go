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
	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/table"
)

// Collector gathers the rows of one resource family.
type Collector interface {
	// Family returns the resource family the collector reports on.
	Family() config.Family

	// Collect discovers resources and renders their rows. It only returns an
	// error when ctx is done; provider failures are recorded in the Result.
	Collect(ctx context.Context) (*Result, error)
}

// Failure is a provider failure tolerated during a collection.
type Failure struct {
	Operation string
	Resource  string
	Metric    string
	Err       error
}

// Code returns the error code of the failure.
func (f Failure) Code() errors.ErrorCode {
	return errors.CodeOf(f.Err)
}

// Result is the outcome of one collection.
type Result struct {
	Family   config.Family
	Table    *table.Table
	Failures []Failure
}

func newResult(f config.Family) *Result {
	return &Result{Family: f, Table: &table.Table{}}
}

// tolerate logs the failure and records it.
func (r *Result) tolerate(f Failure) {
	attrs := []any{"family", r.Family, "operation", f.Operation}
	if f.Resource != "" {
		attrs = append(attrs, "resource", f.Resource)
	}
	if f.Metric != "" {
		attrs = append(attrs, "metric", f.Metric)
	}
	attrs = append(attrs, "transient", f.Code().IsTransient())
	attrs = append(attrs, errors.Attrs(f.Err)...)
	slog.Warn("provider call failed, continuing", attrs...)
	r.Failures = append(r.Failures, f)
}

// callTimeout bounds one provider call.
func callTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaults.ProviderCallTimeout
	}
	return context.WithTimeout(ctx, d)
}
