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

// Package gcs implements the object store on Cloud Storage through the
// JSON API.
package gcs

import (
	"bytes"
	"context"
	"io"

	storage "google.golang.org/api/storage/v1"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
)

// ContentType is set on every created object.
const ContentType = "text/csv; charset=utf-8"

// Store reads and writes Cloud Storage objects.
type Store struct {
	svc *storage.Service
}

// New creates a Cloud Storage store.
func New(ctx context.Context, opts gcp.Options) (*Store, error) {
	o, err := opts.ClientOptions(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := storage.NewService(ctx, o...)
	if err != nil {
		return nil, gcp.Classify(err, "storage.NewService", nil)
	}
	return &Store{svc: svc}, nil
}

func objectContext(bucket, path string) map[string]any {
	return map[string]any{"bucket": bucket, "object": path}
}

// Get downloads the object at path.
func (s *Store) Get(ctx context.Context, bucket, path string) ([]byte, bool, error) {
	resp, err := s.svc.Objects.Get(bucket, path).Context(ctx).Download()
	if err != nil {
		if gcp.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, gcp.Classify(err, "objects.get", objectContext(bucket, path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, gcp.Classify(err, "objects.get", objectContext(bucket, path))
	}
	return data, true, nil
}

// Exists fetches the object metadata only.
func (s *Store) Exists(ctx context.Context, bucket, path string) (bool, error) {
	_, err := s.svc.Objects.Get(bucket, path).Fields("name").Context(ctx).Do()
	if err != nil {
		if gcp.IsNotFound(err) {
			return false, nil
		}
		return false, gcp.Classify(err, "objects.get", objectContext(bucket, path))
	}
	return true, nil
}

// Delete removes the object at path. Deleting an absent object is not an error.
func (s *Store) Delete(ctx context.Context, bucket, path string) error {
	err := s.svc.Objects.Delete(bucket, path).Context(ctx).Do()
	if err != nil && !gcp.IsNotFound(err) {
		return gcp.Classify(err, "objects.delete", objectContext(bucket, path))
	}
	return nil
}

// Create uploads data as the object at path. It fails if the object already exists.
func (s *Store) Create(ctx context.Context, bucket, path string, data []byte) error {
	obj := &storage.Object{Name: path, ContentType: ContentType}
	_, err := s.svc.Objects.Insert(bucket, obj).IfGenerationMatch(0).Media(bytes.NewReader(data)).Context(ctx).Do()
	if err != nil {
		return gcp.Classify(err, "objects.insert", objectContext(bucket, path))
	}
	return nil
}
