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

// Package kube lists pods and nodes through the Kubernetes API and converts
// them into inventory resources.
package kube

import (
	"context"
	stderrors "errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

var _ inventory.WorkloadLister = (*Lister)(nil)

// Lister lists pods and nodes.
type Lister struct {
	Clientset kubernetes.Interface
}

// ListPods returns the pods of namespace. Containers keep their spec order.
func (l *Lister) ListPods(ctx context.Context, namespace string) ([]inventory.Pod, error) {
	list, err := l.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, Classify(err, "pods.list", map[string]any{"namespace": namespace})
	}
	pods := make([]inventory.Pod, 0, len(list.Items))
	for i := range list.Items {
		pods = append(pods, PodFromAPI(&list.Items[i]))
	}
	return pods, nil
}

// ListNodes returns all nodes of the cluster.
func (l *Lister) ListNodes(ctx context.Context) ([]inventory.Node, error) {
	list, err := l.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, Classify(err, "nodes.list", nil)
	}
	nodes := make([]inventory.Node, 0, len(list.Items))
	for i := range list.Items {
		nodes = append(nodes, NodeFromAPI(&list.Items[i]))
	}
	return nodes, nil
}

// PodFromAPI converts a core/v1 Pod.
func PodFromAPI(p *corev1.Pod) inventory.Pod {
	pod := inventory.Pod{
		Name:       p.Name,
		Namespace:  p.Namespace,
		Phase:      string(p.Status.Phase),
		Containers: make([]inventory.Container, 0, len(p.Spec.Containers)),
	}
	for _, c := range p.Spec.Containers {
		pod.Containers = append(pod.Containers, inventory.Container{
			Name:     c.Name,
			Requests: quantities(c.Resources.Requests),
			Limits:   quantities(c.Resources.Limits),
		})
	}
	return pod
}

// NodeFromAPI converts a core/v1 Node.
func NodeFromAPI(n *corev1.Node) inventory.Node {
	return inventory.Node{
		Name:        n.Name,
		Capacity:    quantities(n.Status.Capacity),
		Allocatable: quantities(n.Status.Allocatable),
	}
}

func quantities(rl corev1.ResourceList) inventory.Quantities {
	return inventory.Quantities{
		CPU:              lookup(rl, corev1.ResourceCPU),
		Memory:           lookup(rl, corev1.ResourceMemory),
		EphemeralStorage: lookup(rl, corev1.ResourceEphemeralStorage),
	}
}

func lookup(rl corev1.ResourceList, name corev1.ResourceName) *resource.Quantity {
	q, ok := rl[name]
	if !ok {
		return nil
	}
	return &q
}

// Classify converts a Kubernetes API error into a StructuredError.
func Classify(err error, op string, context map[string]any) error {
	if err == nil {
		return nil
	}
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return err
	}
	if context == nil {
		context = map[string]any{}
	}
	context["operation"] = op
	return errors.WrapWithContext(codeFor(err), fmt.Sprintf("%s failed", op), err, context)
}

func codeFor(err error) errors.ErrorCode {
	switch {
	case apierrors.IsUnauthorized(err), apierrors.IsForbidden(err):
		return errors.ErrCodeUnauthorized
	case apierrors.IsNotFound(err):
		return errors.ErrCodeNotFound
	case apierrors.IsTooManyRequests(err):
		return errors.ErrCodeRateLimitExceeded
	case apierrors.IsTimeout(err), apierrors.IsServerTimeout(err), stderrors.Is(err, context.DeadlineExceeded):
		return errors.ErrCodeTimeout
	case apierrors.IsServiceUnavailable(err), apierrors.IsInternalError(err):
		return errors.ErrCodeUnavailable
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return errors.ErrCodeInvalidRequest
	default:
		return errors.ErrCodeInternal
	}
}
