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
	"strings"
	"time"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
)

// Kind is the metric kind reported by the descriptor catalog.
type Kind string

const (
	KindGauge      Kind = "GAUGE"
	KindCumulative Kind = "CUMULATIVE"
	KindOther      Kind = "OTHER"
)

// ParseKind maps a backend kind name onto a Kind. Anything that is not a
// gauge or cumulative metric (DELTA, unspecified, unknown) is KindOther.
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(KindGauge):
		return KindGauge
	case string(KindCumulative):
		return KindCumulative
	default:
		return KindOther
	}
}

// Aligner is the per-bucket reduction applied within an alignment period.
type Aligner string

const (
	AlignerNone Aligner = ""
	AlignerMean Aligner = "ALIGN_MEAN"
	AlignerSum  Aligner = "ALIGN_SUM"
)

// Policy is the aggregation applied when querying a metric.
type Policy struct {
	AlignmentPeriod time.Duration
	Aligner         Aligner
}

// Aligned reports whether the policy asks the backend to align points.
func (p Policy) Aligned() bool {
	return p.Aligner != AlignerNone && p.AlignmentPeriod > 0
}

// PolicyFor returns the aggregation policy for a metric kind.
func PolicyFor(k Kind) Policy {
	switch k {
	case KindGauge:
		return Policy{AlignmentPeriod: defaults.AlignmentPeriod, Aligner: AlignerMean}
	case KindCumulative:
		return Policy{AlignmentPeriod: defaults.AlignmentPeriod, Aligner: AlignerSum}
	default:
		return Policy{}
	}
}
