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

// Package configmap implements the object store on Kubernetes ConfigMaps.
// The bucket is the namespace and each object is one ConfigMap whose name is
// derived from the object path.
package configmap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory/kube"
)

const (
	// DataKey holds the object body.
	DataKey = "snapshot.csv"
	// PathKey holds the original object path.
	PathKey = "path"

	maxNameLen = 253
	hashLen    = 10
)

var invalidNameChars = regexp.MustCompile(`[^a-z0-9.-]+`)

// Store reads and writes ConfigMaps.
type Store struct {
	client kubernetes.Interface
}

// New returns a store using client.
func New(client kubernetes.Interface) *Store {
	return &Store{client: client}
}

// Name converts an object path into a ConfigMap name, so
// 2024-03-01/us-east4/NodeHealth.csv becomes
// 2024-03-01.us-east4.nodehealth.csv-017be2b8f9. The suffix is taken from a
// hash of the exact path, so paths that sanitize to the same text still get
// distinct names.
func Name(path string) string {
	name := invalidNameChars.ReplaceAllString(strings.ToLower(strings.ReplaceAll(path, "/", ".")), "-")
	name = strings.Trim(name, ".-")
	if name == "" {
		return ""
	}
	if limit := maxNameLen - hashLen - 1; len(name) > limit {
		name = strings.Trim(name[len(name)-limit:], ".-")
	}
	sum := sha256.Sum256([]byte(path))
	return name + "-" + hex.EncodeToString(sum[:])[:hashLen]
}

// Get returns the body of the ConfigMap for path.
func (s *Store) Get(ctx context.Context, namespace, path string) ([]byte, bool, error) {
	cm, err := s.client.CoreV1().ConfigMaps(namespace).Get(ctx, Name(path), metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, kube.Classify(err, "configmaps.get", objectContext(namespace, path))
	}
	return []byte(cm.Data[DataKey]), true, nil
}

// Exists reports whether the ConfigMap for path exists, reading only its metadata.
func (s *Store) Exists(ctx context.Context, namespace, path string) (bool, error) {
	_, err := s.client.CoreV1().ConfigMaps(namespace).Get(ctx, Name(path), metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, kube.Classify(err, "configmaps.get", objectContext(namespace, path))
	}
	return true, nil
}

// Delete removes the ConfigMap for path. Deleting an absent object is not an error.
func (s *Store) Delete(ctx context.Context, namespace, path string) error {
	err := s.client.CoreV1().ConfigMaps(namespace).Delete(ctx, Name(path), metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return kube.Classify(err, "configmaps.delete", objectContext(namespace, path))
	}
	return nil
}

// Create creates the ConfigMap for path holding data.
func (s *Store) Create(ctx context.Context, namespace, path string, data []byte) error {
	name := Name(path)
	if name == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "object path yields an empty ConfigMap name", objectContext(namespace, path))
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				"app.kubernetes.io/name":      "healthsnap",
				"app.kubernetes.io/component": "snapshot",
			},
		},
		Data: map[string]string{
			DataKey: string(data),
			PathKey: path,
		},
	}

	slog.Debug("creating ConfigMap", "namespace", namespace, "name", name, "path", path)

	if _, err := s.client.CoreV1().ConfigMaps(namespace).Create(ctx, cm, metav1.CreateOptions{FieldManager: "healthsnap"}); err != nil {
		return kube.Classify(err, "configmaps.create", objectContext(namespace, path))
	}
	return nil
}

func objectContext(namespace, path string) map[string]any {
	return map[string]any{"namespace": namespace, "object": path, "configmap": fmt.Sprintf("%s/%s", namespace, Name(path))}
}
