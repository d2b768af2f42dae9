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

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/config"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
)

const envPrefix = "HEALTHSNAP_"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML configuration file; flags override its values",
		Sources: cli.EnvVars(envPrefix + "CONFIG"),
	}
}

func regionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "region",
		Usage:   "region to snapshot (e.g., us-east4)",
		Sources: cli.EnvVars(envPrefix + "REGION"),
	}
}

func familyFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name: "family",
		Usage: fmt.Sprintf("resource family to snapshot, can be repeated (supported values: %s)",
			config.SupportedFamilies()),
		Sources: cli.EnvVars(envPrefix + "FAMILIES"),
	}
}

func labelFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "label",
		Usage:   "snapshot label override (format: family=Label, can be repeated)",
		Sources: cli.EnvVars(envPrefix + "LABELS"),
	}
}

func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "project",
			Usage:   "cloud project id",
			Sources: cli.EnvVars(envPrefix+"PROJECT", "GOOGLE_CLOUD_PROJECT"),
		},
		regionFlag(),
		&cli.StringFlag{
			Name:    "cluster",
			Usage:   "managed cluster id; every cluster in the region when unset",
			Sources: cli.EnvVars(envPrefix + "CLUSTER"),
		},
		&cli.StringFlag{
			Name:    "namespace",
			Usage:   "namespace whose pods are reported",
			Sources: cli.EnvVars(envPrefix + "NAMESPACE"),
		},
		&cli.StringFlag{
			Name:    "bucket",
			Usage:   "destination: gs://bucket, file:///dir, cm://namespace, mem://name or stdout",
			Sources: cli.EnvVars(envPrefix + "BUCKET"),
		},
		familyFlag(),
		labelFlag(),
		&cli.StringSliceFlag{
			Name:    "metric",
			Usage:   "catalog metric type, can be repeated; replaces the default catalog",
			Sources: cli.EnvVars(envPrefix + "METRICS"),
		},
		&cli.StringFlag{
			Name:    "instance-filter",
			Usage:   "instance list filter",
			Sources: cli.EnvVars(envPrefix + "INSTANCE_FILTER"),
		},
		&cli.StringFlag{
			Name:    "backend",
			Usage:   fmt.Sprintf("time-series backend (%s or %s)", config.BackendMonitoring, config.BackendPrometheus),
			Sources: cli.EnvVars(envPrefix + "BACKEND"),
		},
		&cli.StringFlag{
			Name:    "prometheus-url",
			Usage:   "Prometheus server address for the prometheus backend",
			Sources: cli.EnvVars(envPrefix + "PROMETHEUS_URL"),
		},
		&cli.StringFlag{
			Name:    "bearer-token-file",
			Usage:   "file holding a bearer token for the Prometheus server",
			Sources: cli.EnvVars(envPrefix + "BEARER_TOKEN_FILE"),
		},
		&cli.FloatFlag{
			Name:    "qps",
			Usage:   fmt.Sprintf("time-series queries per second (default %d)", defaults.SamplerQPS),
			Sources: cli.EnvVars(envPrefix + "QPS"),
		},
		&cli.StringFlag{
			Name:    "credentials",
			Usage:   "service account key file; application default credentials when empty",
			Sources: cli.EnvVars(envPrefix + "CREDENTIALS"),
		},
		&cli.StringFlag{
			Name:    "kubeconfig",
			Usage:   "path to kubeconfig; in-cluster config or ~/.kube/config when empty",
			Sources: cli.EnvVars(envPrefix+"KUBECONFIG", "KUBECONFIG"),
		},
		&cli.StringFlag{
			Name:    "pushgateway",
			Usage:   "Prometheus Pushgateway URL to push run metrics to",
			Sources: cli.EnvVars(envPrefix + "PUSHGATEWAY"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "collection deadline; rows gathered before it are still published",
			Sources: cli.EnvVars(envPrefix + "TIMEOUT"),
			Value:   defaults.CLIRunTimeout,
		},
	}
}

// loadConfig reads --config when set and applies explicitly set flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.New()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to load config %q", path), err)
		}
	}

	strs := map[string]*string{
		"project":           &cfg.Project,
		"region":            &cfg.Region,
		"cluster":           &cfg.Cluster,
		"namespace":         &cfg.Namespace,
		"bucket":            &cfg.Bucket,
		"instance-filter":   &cfg.InstanceFilter,
		"backend":           &cfg.TimeSeries.Backend,
		"prometheus-url":    &cfg.TimeSeries.PrometheusURL,
		"bearer-token-file": &cfg.TimeSeries.BearerTokenFile,
		"credentials":       &cfg.CredentialsFile,
		"kubeconfig":        &cfg.Kubeconfig,
		"pushgateway":       &cfg.Pushgateway,
	}
	for flag, dst := range strs {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}

	if cmd.IsSet("qps") {
		cfg.TimeSeries.QPS = cmd.Float("qps")
	}
	if cmd.IsSet("metric") {
		cfg.Metrics = cmd.StringSlice("metric")
	}
	if err := applySelection(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySelection applies --family and --label, shared by every command.
func applySelection(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("region") {
		cfg.Region = cmd.String("region")
	}
	if cmd.IsSet("family") {
		cfg.Families = nil
		for _, f := range cmd.StringSlice("family") {
			cfg.Families = append(cfg.Families, config.Family(strings.ToLower(strings.TrimSpace(f))))
		}
	}
	if cmd.IsSet("label") {
		labels, err := parseLabels(cmd.StringSlice("label"))
		if err != nil {
			return err
		}
		if cfg.Labels == nil {
			cfg.Labels = map[config.Family]string{}
		}
		for f, l := range labels {
			cfg.Labels[f] = l
		}
	}
	return nil
}

// parseLabels parses family=Label pairs.
func parseLabels(pairs []string) (map[config.Family]string, error) {
	out := make(map[config.Family]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid label %q, expected family=Label", p))
		}
		out[config.Family(strings.ToLower(k))] = v
	}
	return out, nil
}
