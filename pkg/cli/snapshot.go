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
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/collector"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/errors"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/gcp"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/k8s/client"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/snapshot"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/snapshotter"
	"github.com/NVIDIA/cloud-health-snapshot/pkg/store"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Collect health rows and publish today's snapshots",
		Description: `Collect one row per resource for each selected family and publish the
rows of each family to <yyyy-MM-dd>/<region>/<label>.csv in the bucket,
replacing any snapshot already published there today.

Families:
  instance  instances matching the filter, with the max of each catalog
            metric over the last 5 minutes
  pod       container resource requests of every pod in the namespace
  podlimits container resource limits of every pod in the namespace
            (only when selected)
  node      capacity and allocatable ephemeral storage of every node
  cluster   the managed cluster descriptor, or every cluster in the
            region when --cluster is not set

Provider failures are logged and leave the affected rows or fields empty.
Only a publish failure fails the command.

# Examples

Snapshot everything into a Cloud Storage bucket:
  healthsnap snapshot --project my-project --region us-east4 --cluster prod \
    --bucket gs://health-snapshots

Only nodes and pods, written to a local directory:
  healthsnap snapshot --region us-east4 --family node --family pod \
    --bucket file:///var/lib/healthsnap

Read settings from a file and print the snapshots instead of storing them:
  healthsnap snapshot --config healthsnap.yaml --bucket stdout`,
		Flags: snapshotFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			st, bucket, err := store.Open(ctx, cfg.Bucket, store.Options{
				GCP:        gcp.Options{CredentialsFile: cfg.CredentialsFile, UserAgent: client.UserAgent},
				Kubeconfig: cfg.Kubeconfig,
				Out:        cmd.Root().Writer,
			})
			if err != nil {
				return errors.Wrap(errors.ErrCodePublish, "failed to open destination", err)
			}

			s := snapshotter.New(cfg, collector.NewDefaultFactory(cfg), snapshot.NewPublisher(st, bucket))
			report, err := s.Run(ctx)
			if err != nil {
				return fmt.Errorf("snapshot run %s failed: %w", report.RunID, err)
			}

			for _, p := range report.Published {
				slog.Debug("published", "family", p.Family, "path", p.Path, "rows", p.Rows)
			}
			return nil
		},
	}
}

func pathCmd() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the paths today's snapshots are published to",
		Description: `Print one line per selected family with the object path a snapshot run
started now would write:

  healthsnap path --region us-east4
  2024-03-01/us-east4/InstanceHealth.csv
  2024-03-01/us-east4/PODHealth.csv
  ...`,
		Flags: []cli.Flag{
			configFlag(),
			regionFlag(),
			familyFlag(),
			labelFlag(),
			&cli.TimestampFlag{
				Name:  "date",
				Usage: "date to compute paths for instead of today (format: 2006-01-02)",
				Config: cli.TimestampConfig{
					Layouts: []string{snapshot.DateLayout},
				},
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Region == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "region is required")
			}

			pub := &snapshot.Publisher{}
			s := snapshotter.Snapshotter{Config: cfg}
			for _, f := range s.Families() {
				p := pub.Path(cfg.Region, cfg.Label(f))
				if cmd.IsSet("date") {
					p = snapshot.Path(cmd.Timestamp("date"), cfg.Region, cfg.Label(f))
				}
				if _, err := fmt.Fprintln(cmd.Root().Writer, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
