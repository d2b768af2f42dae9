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

// Package cli implements the healthsnap command line interface.
//
// Commands:
//
//	snapshot  collect every selected family and publish its snapshot
//	path      print the paths today's snapshots are published to
//	version   print version information
//
// Settings come from an optional YAML file (--config) and are overridden by
// flags or their HEALTHSNAP_* environment variables. The logger is configured
// from --log-level (or LOG_LEVEL) before any command runs.
package cli
