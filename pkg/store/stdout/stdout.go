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

// Package stdout implements a write-only object store that prints each
// created object to an output stream.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Store prints created objects. It never holds objects, so Get and Exists
// always report absent and Delete does nothing.
type Store struct {
	out io.Writer
}

// New returns a store writing to out. A nil out writes to os.Stdout.
func New(out io.Writer) *Store {
	if out == nil {
		out = os.Stdout
	}
	return &Store{out: out}
}

// Get reports the object as absent.
func (s *Store) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Exists reports the object as absent.
func (s *Store) Exists(context.Context, string, string) (bool, error) {
	return false, nil
}

// Delete is a no-op.
func (s *Store) Delete(context.Context, string, string) error {
	return nil
}

// Create prints a header line naming the object followed by its body.
func (s *Store) Create(_ context.Context, bucket, path string, data []byte) error {
	if _, err := fmt.Fprintf(s.out, "# %s/%s\n%s\n", bucket, path, data); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}
