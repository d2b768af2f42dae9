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

// Package store defines the object store contract used by the snapshot
// publisher and opens an implementation from a destination URI.
//
// Supported destinations:
//
//	gs://bucket          Cloud Storage bucket (a bare bucket name means the same)
//	file:///dir          local directory
//	cm://namespace       Kubernetes ConfigMaps in namespace
//	mem://name           in-process store, useful for dry runs
//	stdout               print each object, never read back
package store

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/k8s/client"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/configmap"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/file"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/gcs"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/memory"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store/stdout"
)

// URI schemes accepted by Open.
const (
	SchemeGCS       = "gs"
	SchemeFile      = "file"
	SchemeConfigMap = "cm"
	SchemeMemory    = "mem"
	Stdout          = "stdout"
)

// ObjectStore reads, deletes and creates whole objects addressed by bucket and path.
type ObjectStore interface {
	// Get returns the object body, or false when no object exists at path.
	Get(ctx context.Context, bucket, path string) ([]byte, bool, error)

	// Exists reports whether an object exists at path without reading its body.
	Exists(ctx context.Context, bucket, path string) (bool, error)

	// Delete removes the object at path.
	Delete(ctx context.Context, bucket, path string) error

	// Create writes data as the entire body of a new object at path.
	Create(ctx context.Context, bucket, path string, data []byte) error
}

var (
	_ ObjectStore = (*gcs.Store)(nil)
	_ ObjectStore = (*file.Store)(nil)
	_ ObjectStore = (*configmap.Store)(nil)
	_ ObjectStore = (*memory.Store)(nil)
	_ ObjectStore = (*stdout.Store)(nil)
)

// Options carries what the store implementations need to connect.
type Options struct {
	GCP        gcp.Options
	Kubeconfig string
	Out        io.Writer
}

// Destination is a parsed destination URI.
type Destination struct {
	Scheme string
	Bucket string
}

// Parse splits uri into its scheme and bucket.
func Parse(uri string) (Destination, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Destination{}, errors.New(errors.ErrCodeInvalidRequest, "destination is required")
	}
	if uri == Stdout || uri == "-" {
		return Destination{Scheme: Stdout, Bucket: Stdout}, nil
	}
	if !strings.Contains(uri, "://") {
		return Destination{Scheme: SchemeGCS, Bucket: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Destination{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid destination", err, map[string]any{"destination": uri})
	}

	d := Destination{Scheme: u.Scheme}
	switch u.Scheme {
	case SchemeGCS, SchemeMemory:
		d.Bucket = u.Host
	case SchemeConfigMap:
		d.Bucket = u.Host
		if d.Bucket == "" {
			d.Bucket = defaults.Namespace
		}
	case SchemeFile:
		d.Bucket = u.Host + u.Path
	default:
		return Destination{}, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported destination scheme", map[string]any{"destination": uri})
	}
	if d.Bucket == "" {
		return Destination{}, errors.NewWithContext(errors.ErrCodeInvalidRequest, "destination has no bucket", map[string]any{"destination": uri})
	}
	return d, nil
}

// Open parses uri and returns the matching store and the bucket to address in it.
func Open(ctx context.Context, uri string, opts Options) (ObjectStore, string, error) {
	d, err := Parse(uri)
	if err != nil {
		return nil, "", err
	}

	switch d.Scheme {
	case SchemeGCS:
		s, err := gcs.New(ctx, opts.GCP)
		if err != nil {
			return nil, "", err
		}
		return s, d.Bucket, nil
	case SchemeConfigMap:
		cs, err := client.GetKubeClient(opts.Kubeconfig)
		if err != nil {
			return nil, "", err
		}
		return configmap.New(cs), d.Bucket, nil
	case SchemeFile:
		return file.New(), d.Bucket, nil
	case SchemeMemory:
		return memory.New(), d.Bucket, nil
	default:
		return stdout.New(opts.Out), d.Bucket, nil
	}
}
