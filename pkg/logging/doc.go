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

// Package logging configures structured logging for healthsnap.
//
// It wraps the standard library slog package with a JSON handler on stderr,
// environment-based level selection (LOG_LEVEL) and module/version attributes
// on every record. Debug level adds source locations.
//
// Usage:
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("healthsnap", version, "")
//	    slog.Info("collecting", "region", "us-east4")
//	}
//
// Supported levels (case-insensitive): debug, info (default), warn/warning, error.
package logging
