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

// Package memory implements an in-process object store.
package memory

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// Store keeps objects in memory keyed by bucket and path.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{objects: map[string][]byte{}}
}

func key(bucket, path string) string {
	return bucket + "/" + path
}

// Get returns a copy of the object at path.
func (s *Store) Get(_ context.Context, bucket, path string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key(bucket, path)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Exists reports whether an object is stored at path.
func (s *Store) Exists(_ context.Context, bucket, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key(bucket, path)]
	return ok, nil
}

// Delete removes the object at path. Deleting an absent object is not an error.
func (s *Store) Delete(_ context.Context, bucket, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key(bucket, path))
	return nil
}

// Create stores a copy of data at path. It fails if the object already exists.
func (s *Store) Create(_ context.Context, bucket, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(bucket, path)
	if _, ok := s.objects[k]; ok {
		return fmt.Errorf("failed to create %s: %w", k, fs.ErrExist)
	}
	s.objects[k] = append([]byte(nil), data...)
	return nil
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
