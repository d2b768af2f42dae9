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

// Package collector builds the rows of each resource family.
//
// A Collector discovers the resources of one family and renders one row per
// resource. Provider failures never abort a collection: discovery failures
// yield zero rows for the failed call and sampling failures leave the metric
// column of that row empty. Each tolerated failure is logged and reported in
// the Result so callers can count it.
//
// Collectors run sequentially; a Collector is not safe for concurrent use.
//
// The DefaultFactory wires collectors to the Google Cloud, Kubernetes and
// time-series backends named by a config.Config, constructing each client on
// first use:
//
//	factory := collector.NewDefaultFactory(cfg)
//	c, err := factory.Create(ctx, config.FamilyInstance)
//	if err != nil {
//	    return err
//	}
//	res, err := c.Collect(ctx)
package collector
