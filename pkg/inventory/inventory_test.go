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

package inventory

import "testing"

func TestClusterRefName(t *testing.T) {
	ref := ClusterRef{Project: "p1", Location: "us-east4", Cluster: "prod"}
	want := "projects/p1/locations/us-east4/clusters/prod"
	if got := ref.Name(); got != want {
		t.Errorf("Name() = %s, want %s", got, want)
	}
}

func TestClusterRefParent(t *testing.T) {
	ref := ClusterRef{Project: "p1", Location: "us-east4"}
	want := "projects/p1/locations/us-east4"
	if got := ref.Parent(); got != want {
		t.Errorf("Parent() = %s, want %s", got, want)
	}
}
