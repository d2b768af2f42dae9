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

// Package errors provides structured error types used to classify failures
// from discovery, sampling and publishing calls.
//
// Every provider adapter returns a *StructuredError whose Code tells the
// caller whether the failure is tolerable. Discovery and sampling failures
// are logged and the batch pass continues; ErrCodePublish failures abort it.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "metric descriptor not found",
//	    cause,
//	    map[string]any{
//	        "metric":  "compute.googleapis.com/instance/cpu/utilization",
//	        "project": project,
//	    },
//	)
//
//	switch errors.CodeOf(err) {
//	case errors.ErrCodePublish:
//	    return err
//	default:
//	    slog.Warn("continuing without value", "error", err)
//	}
package errors
