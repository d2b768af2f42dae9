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

// Package inventory defines the resources a healthsnap run reports on and the
// discovery interfaces that list them.
//
// Adapters live in subpackages: gce lists zones, instances and managed
// clusters through the Google Cloud APIs, kube lists pods and nodes through
// the Kubernetes API. Every call returns its failure to the caller; the
// collectors decide to log it and continue with zero results.
package inventory

import (
	"context"
	"fmt"
	"iter"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Instance is a compute instance in a zone.
type Instance struct {
	// ID is the provider's numeric identifier, used to select time series.
	ID     string
	Name   string
	Zone   string
	Status string
}

// Quantities holds optional cpu, memory and ephemeral-storage amounts.
// A nil field means the value is unset.
type Quantities struct {
	CPU              *resource.Quantity
	Memory           *resource.Quantity
	EphemeralStorage *resource.Quantity
}

// Container describes one container of a pod spec.
type Container struct {
	Name     string
	Requests Quantities
	Limits   Quantities
}

// Pod is a pod with its containers in spec order.
type Pod struct {
	Name       string
	Namespace  string
	Phase      string
	Containers []Container
}

// Node is a cluster node with its capacity and allocatable resources.
type Node struct {
	Name        string
	Capacity    Quantities
	Allocatable Quantities
}

// Cluster is the descriptor of a managed cluster control plane.
type Cluster struct {
	Name     string
	Status   string
	Location string
	Endpoint string
}

// ClusterRef is the fully qualified path of a managed cluster. An empty
// Cluster refers to every cluster in the location.
type ClusterRef struct {
	Project  string
	Location string
	Cluster  string
}

// Name returns the resource name projects/<p>/locations/<l>/clusters/<c>.
func (r ClusterRef) Name() string {
	return fmt.Sprintf("%s/clusters/%s", r.Parent(), r.Cluster)
}

// Parent returns the location name projects/<p>/locations/<l>.
func (r ClusterRef) Parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", r.Project, r.Location)
}

// ComputeLister discovers zones and instances.
type ComputeLister interface {
	// ListZones returns the zones of region in provider order.
	ListZones(ctx context.Context, project, region string) ([]string, error)

	// ListInstances lazily pages through the instances of zone matching filter.
	// A listing error is yielded once and ends the sequence. Ranging over the
	// sequence again restarts the listing from the first page.
	ListInstances(ctx context.Context, project, zone, filter string) iter.Seq2[Instance, error]
}

// ClusterLister fetches managed cluster descriptors.
type ClusterLister interface {
	GetCluster(ctx context.Context, ref ClusterRef) (Cluster, error)

	// ListClusters returns every cluster in location, in provider order.
	ListClusters(ctx context.Context, project, location string) ([]Cluster, error)
}

// WorkloadLister lists pods and nodes of a Kubernetes cluster.
type WorkloadLister interface {
	ListPods(ctx context.Context, namespace string) ([]Pod, error)
	ListNodes(ctx context.Context) ([]Node, error)
}
