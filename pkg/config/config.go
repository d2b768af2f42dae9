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

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

// Family identifies a resource family, each published as its own snapshot.
type Family string

const (
	FamilyInstance Family = "instance"
	FamilyPod      Family = "pod"
	FamilyNode     Family = "node"
	FamilyCluster  Family = "cluster"

	// FamilyPodLimits reports container limits. It is only produced when selected.
	FamilyPodLimits Family = "podlimits"
)

// SupportedFamilies returns every family in publishing order.
func SupportedFamilies() []Family {
	return []Family{FamilyInstance, FamilyPod, FamilyPodLimits, FamilyNode, FamilyCluster}
}

// DefaultFamilies returns the families produced when none are selected.
func DefaultFamilies() []Family {
	return []Family{FamilyInstance, FamilyPod, FamilyNode, FamilyCluster}
}

// DefaultLabel returns the snapshot label used for the family.
func (f Family) DefaultLabel() string {
	switch f {
	case FamilyInstance:
		return defaults.LabelInstance
	case FamilyPod:
		return defaults.LabelPod
	case FamilyPodLimits:
		return defaults.LabelPodLimit
	case FamilyNode:
		return defaults.LabelNode
	case FamilyCluster:
		return defaults.LabelCluster
	default:
		return ""
	}
}

// Time-series backends.
const (
	BackendMonitoring = "monitoring"
	BackendPrometheus = "prometheus"
)

// TimeSeries configures the metric descriptor and time-series backend.
type TimeSeries struct {
	Backend         string  `yaml:"backend"`
	PrometheusURL   string  `yaml:"prometheusURL"`
	BearerTokenFile string  `yaml:"bearerTokenFile"`
	QPS             float64 `yaml:"qps"`
}

// Config is the complete configuration of one batch pass.
type Config struct {
	Project         string            `yaml:"project"`
	Region          string            `yaml:"region"`
	Cluster         string            `yaml:"cluster"`
	Namespace       string            `yaml:"namespace"`
	Bucket          string            `yaml:"bucket"`
	Families        []Family          `yaml:"families"`
	Labels          map[Family]string `yaml:"labels"`
	InstanceFilter  string            `yaml:"instanceFilter"`
	MetricPrefix    string            `yaml:"metricPrefix"`
	Metrics         []string          `yaml:"metrics"`
	TimeSeries      TimeSeries        `yaml:"timeSeries"`
	CredentialsFile string            `yaml:"credentialsFile"`
	Kubeconfig      string            `yaml:"kubeconfig"`
	Pushgateway     string            `yaml:"pushgateway"`
}

// New returns a Config populated with defaults.
func New() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads the YAML file at path and applies defaults to unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills unset fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Namespace == "" {
		c.Namespace = defaults.Namespace
	}
	if len(c.Families) == 0 {
		c.Families = DefaultFamilies()
	}
	if c.InstanceFilter == "" {
		c.InstanceFilter = defaults.InstanceFilter
	}
	if c.MetricPrefix == "" {
		c.MetricPrefix = defaults.MetricPrefix
	}
	if len(c.Metrics) == 0 {
		c.Metrics = defaults.MetricCatalog()
	}
	if c.TimeSeries.Backend == "" {
		c.TimeSeries.Backend = BackendMonitoring
	}
	if c.TimeSeries.QPS == 0 {
		c.TimeSeries.QPS = defaults.SamplerQPS
	}
}

// Label returns the snapshot label for the family, honoring overrides.
func (c *Config) Label(f Family) string {
	if l, ok := c.Labels[f]; ok && l != "" {
		return l
	}
	return f.DefaultLabel()
}

// Enabled reports whether the family is selected for this run.
func (c *Config) Enabled(f Family) bool {
	return slices.Contains(c.Families, f)
}

// Validate checks the configuration once before the run starts.
func (c *Config) Validate() error {
	var problems []string

	if c.Bucket == "" {
		problems = append(problems, "bucket is required")
	}
	if c.Region == "" {
		problems = append(problems, "region is required")
	} else if strings.Contains(c.Region, "/") {
		problems = append(problems, fmt.Sprintf("region %q must not contain '/'", c.Region))
	}
	for _, f := range c.Families {
		if !slices.Contains(SupportedFamilies(), f) {
			problems = append(problems, fmt.Sprintf("unknown family %q", f))
		}
	}
	if (c.Enabled(FamilyInstance) || c.Enabled(FamilyCluster)) && c.Project == "" {
		problems = append(problems, "project is required for instance and cluster snapshots")
	}
	for f, l := range c.Labels {
		if strings.ContainsAny(l, "/") {
			problems = append(problems, fmt.Sprintf("label %q for %s must not contain '/'", l, f))
		}
	}
	if c.Enabled(FamilyInstance) {
		switch c.TimeSeries.Backend {
		case BackendMonitoring:
		case BackendPrometheus:
			if c.TimeSeries.PrometheusURL == "" {
				problems = append(problems, "timeSeries.prometheusURL is required for the prometheus backend")
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown time-series backend %q", c.TimeSeries.Backend))
		}
	}
	if c.TimeSeries.QPS < 0 {
		problems = append(problems, "timeSeries.qps must not be negative")
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": len(problems)})
	}
	return nil
}
