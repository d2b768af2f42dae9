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

// Package defaults provides the constants shared by the collection and
// publishing pipeline: sampling window, alignment period, call timeouts,
// the default metric catalog and the default snapshot labels.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ProviderCallTimeout)
//	defer cancel()
//
// # Sampling
//
// LookbackWindow selects which data is read (the five minutes ending at call
// time); it is not an execution deadline. AlignmentPeriod is the bucket width
// applied to GAUGE and CUMULATIVE metrics.
package defaults
