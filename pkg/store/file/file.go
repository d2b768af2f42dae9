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

// Package file implements an object store on the local filesystem. The
// bucket is a root directory and object paths are slash separated paths
// below it.
package file

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store reads and writes objects as files.
type Store struct{}

// New returns a filesystem store.
func New() *Store {
	return &Store{}
}

func objectPath(bucket, path string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("bucket directory is required")
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(bucket, clean), nil
}

// Get reads the object at path.
func (s *Store) Get(_ context.Context, bucket, path string) ([]byte, bool, error) {
	p, err := objectPath(bucket, path)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, true, nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(_ context.Context, bucket, path string) (bool, error) {
	p, err := objectPath(bucket, path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return true, nil
}

// Delete removes the object at path. Deleting an absent object is not an error.
func (s *Store) Delete(_ context.Context, bucket, path string) error {
	p, err := objectPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// Create writes data at path, creating parent directories as needed.
func (s *Store) Create(_ context.Context, bucket, path string, data []byte) error {
	p, err := objectPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p, err)
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", p, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", p, err)
	}
	return nil
}
