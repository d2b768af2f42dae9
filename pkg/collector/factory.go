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

package collector

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/config"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory/gce"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory/kube"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/k8s/client"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric/monitoring"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/metric/prometheus"
)

// Factory creates the collector of a family.
type Factory interface {
	Create(ctx context.Context, f config.Family) (Collector, error)
}

// DefaultFactory creates collectors backed by the providers named in Config.
// Provider fields left nil are constructed on first use; tests set them to fakes.
type DefaultFactory struct {
	Config *config.Config
	GCP    gcp.Options

	Compute     inventory.ComputeLister
	Clusters    inventory.ClusterLister
	Workloads   inventory.WorkloadLister
	Descriptors metric.DescriptorSource
	Series      metric.TimeSeriesSource

	resolver *metric.Resolver
}

// NewDefaultFactory creates a factory for cfg.
func NewDefaultFactory(cfg *config.Config) *DefaultFactory {
	return &DefaultFactory{
		Config: cfg,
		GCP: gcp.Options{
			CredentialsFile: cfg.CredentialsFile,
			UserAgent:       client.UserAgent,
		},
	}
}

// Create returns the collector for family f.
func (f *DefaultFactory) Create(ctx context.Context, family config.Family) (Collector, error) {
	switch family {
	case config.FamilyInstance:
		return f.CreateInstanceCollector(ctx)
	case config.FamilyPod:
		return f.CreatePodCollector()
	case config.FamilyPodLimits:
		return f.CreatePodLimitsCollector()
	case config.FamilyNode:
		return f.CreateNodeCollector()
	case config.FamilyCluster:
		return f.CreateClusterCollector(ctx)
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unknown family %q", family))
	}
}

// CreateInstanceCollector creates the instance collector.
func (f *DefaultFactory) CreateInstanceCollector(ctx context.Context) (Collector, error) {
	if f.Compute == nil {
		c, err := gce.NewCompute(ctx, f.GCP)
		if err != nil {
			return nil, err
		}
		f.Compute = c
	}
	if err := f.timeSeriesBackend(ctx); err != nil {
		return nil, err
	}
	if f.resolver == nil {
		f.resolver = metric.NewResolver(ctx, f.Descriptors)
	}

	sampler := &metric.Sampler{Source: f.Series}
	if qps := f.Config.TimeSeries.QPS; qps > 0 {
		sampler.Limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}

	return &InstanceCollector{
		Compute:  f.Compute,
		Resolver: f.resolver,
		Sampler:  sampler,
		Project:  f.Config.Project,
		Region:   f.Config.Region,
		Filter:   f.Config.InstanceFilter,
		Prefix:   f.Config.MetricPrefix,
		Metrics:  f.Config.Metrics,
	}, nil
}

// CreatePodCollector creates the pod collector.
func (f *DefaultFactory) CreatePodCollector() (Collector, error) {
	if err := f.workloads(); err != nil {
		return nil, err
	}
	return &PodCollector{Workloads: f.Workloads, Namespace: f.Config.Namespace}, nil
}

// CreatePodLimitsCollector creates the collector reporting container limits.
func (f *DefaultFactory) CreatePodLimitsCollector() (Collector, error) {
	if err := f.workloads(); err != nil {
		return nil, err
	}
	return &PodCollector{Workloads: f.Workloads, Namespace: f.Config.Namespace, Limits: true}, nil
}

// CreateNodeCollector creates the node collector.
func (f *DefaultFactory) CreateNodeCollector() (Collector, error) {
	if err := f.workloads(); err != nil {
		return nil, err
	}
	return &NodeCollector{Workloads: f.Workloads}, nil
}

// CreateClusterCollector creates the cluster collector.
func (f *DefaultFactory) CreateClusterCollector(ctx context.Context) (Collector, error) {
	if f.Clusters == nil {
		c, err := gce.NewClusters(ctx, f.GCP)
		if err != nil {
			return nil, err
		}
		f.Clusters = c
	}
	return &ClusterCollector{
		Clusters: f.Clusters,
		Ref: inventory.ClusterRef{
			Project:  f.Config.Project,
			Location: f.Config.Region,
			Cluster:  f.Config.Cluster,
		},
	}, nil
}

func (f *DefaultFactory) workloads() error {
	if f.Workloads != nil {
		return nil
	}
	cs, err := client.GetKubeClient(f.Config.Kubeconfig)
	if err != nil {
		return err
	}
	f.Workloads = &kube.Lister{Clientset: cs}
	return nil
}

func (f *DefaultFactory) timeSeriesBackend(ctx context.Context) error {
	if f.Descriptors != nil && f.Series != nil {
		return nil
	}

	ts := f.Config.TimeSeries
	var backend interface {
		metric.DescriptorSource
		metric.TimeSeriesSource
	}
	switch ts.Backend {
	case config.BackendPrometheus:
		c, err := prometheus.New(prometheus.Options{Address: ts.PrometheusURL, BearerTokenFile: ts.BearerTokenFile})
		if err != nil {
			return err
		}
		backend = c
	case config.BackendMonitoring, "":
		c, err := monitoring.New(ctx, f.GCP)
		if err != nil {
			return err
		}
		backend = c
	default:
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unknown time-series backend %q", ts.Backend))
	}

	if f.Descriptors == nil {
		f.Descriptors = backend
	}
	if f.Series == nil {
		f.Series = backend
	}
	return nil
}
