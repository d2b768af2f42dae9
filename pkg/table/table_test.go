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

package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/inventory"
)

const prefix = "compute.googleapis.com/instance/"

func qty(s string) *resource.Quantity {
	q := resource.MustParse(s)
	return &q
}

func TestRowAndTable(t *testing.T) {
	var tbl Table
	assert.Equal(t, "", tbl.String())

	r := NewRow("a").Add("").AddPair("k", "v")
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "a,,k:v", r.String())

	tbl.Append(r, NewRow("b"))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "a,,k:v\nb", tbl.String())
	assert.Equal(t, []byte("a,,k:v\nb"), tbl.Bytes())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{0.42, "0.42"},
		{-1, "-1"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   *resource.Quantity
		want string
	}{
		{nil, ""},
		{qty("500m"), "0.5"},
		{qty("2"), "2"},
		{qty("128Mi"), "134217728"},
		{qty("100Gi"), "107374182400"},
		{qty("700m"), "0.7"},
		{qty("2300m"), "2.3"},
		{qty("0.3"), "0.3"},
		{qty("3.7Gi"), "3972844748.8"},
		{qty("123456789012345678"), "123456789012345678"},
		{qty("1k"), "1000"},
		{qty("0"), "0"},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.in != nil {
			name = tt.in.String()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatQuantity(tt.in))
		})
	}
}

func TestInstanceRow(t *testing.T) {
	in := inventory.Instance{ID: "101", Name: "vm-a", Zone: "z1", Status: "RUNNING"}

	t.Run("single metric", func(t *testing.T) {
		row := InstanceRow(in, prefix, []Sample{{Metric: prefix + "cpu/utilization", Value: 0.42}})
		assert.Equal(t, "instance:vm-a,zone:z1,status:RUNNING,cpu/utilization:0.42", row.String())
	})

	t.Run("failed metric keeps its column", func(t *testing.T) {
		row := InstanceRow(in, prefix, []Sample{
			{Metric: prefix + "cpu/utilization", Value: 0},
			{Metric: prefix + "instance/uptime", Err: fmt.Errorf("boom")},
			{Metric: prefix + "disk/read_ops_count", Value: 12},
		})
		assert.Equal(t, "instance:vm-a,zone:z1,status:RUNNING,cpu/utilization:0,instance/uptime:,disk/read_ops_count:12", row.String())
		assert.Equal(t, 6, row.Len())
	})
}

func TestPodRow(t *testing.T) {
	t.Run("unset ephemeral storage", func(t *testing.T) {
		p := inventory.Pod{Name: "p1", Containers: []inventory.Container{{
			Name:     "c1",
			Requests: inventory.Quantities{CPU: qty("500m"), Memory: qty("134217728")},
		}}}
		assert.Equal(t, "p1,c1,0.5,134217728,", PodRow(p).String())
	})

	t.Run("containers in spec order", func(t *testing.T) {
		p := inventory.Pod{Name: "p2", Containers: []inventory.Container{
			{Name: "main", Requests: inventory.Quantities{CPU: qty("1")}},
			{Name: "sidecar"},
		}}
		row := PodRow(p)
		assert.Equal(t, "p2,main,1,,,sidecar,,,", row.String())
		assert.Equal(t, 9, row.Len())
	})

	t.Run("no containers", func(t *testing.T) {
		assert.Equal(t, "p3", PodRow(inventory.Pod{Name: "p3"}).String())
	})
}

func TestNodeRow(t *testing.T) {
	n := inventory.Node{
		Name:        "n1",
		Capacity:    inventory.Quantities{CPU: qty("4"), Memory: qty("16Gi"), EphemeralStorage: qty("100Gi")},
		Allocatable: inventory.Quantities{EphemeralStorage: qty("90Gi")},
	}
	assert.Equal(t, "n1,4,17179869184,107374182400,96636764160", NodeRow(n).String())
	assert.Equal(t, "n2,,,,", NodeRow(inventory.Node{Name: "n2"}).String())
}

func TestClusterRow(t *testing.T) {
	c := inventory.Cluster{Name: "c1", Status: "RUNNING", Location: "us-central1", Endpoint: "10.0.0.1"}
	assert.Equal(t, "ClusterName:c1,ClusterStatus:RUNNING,ClusterLocation:us-central1,ClusterEndpoint:10.0.0.1", ClusterRow(c).String())
}
