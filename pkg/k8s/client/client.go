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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/NVIDIA/cloud-health-snapshot/pkg/defaults"
)

// Interface is an alias for kubernetes.Interface so callers and tests can
// use fake.NewClientset() interchangeably with the real clientset.
type Interface = kubernetes.Interface

// UserAgent is set on every request made by clients built here.
var UserAgent = "healthsnap"

var (
	clientOnce   sync.Once
	cachedClient Interface
	clientErr    error
)

// GetKubeClient returns the process-wide clientset, building it from
// kubeconfig on the first call. Later calls ignore the argument.
func GetKubeClient(kubeconfig string) (Interface, error) {
	clientOnce.Do(func() {
		cachedClient, _, clientErr = BuildKubeClient(kubeconfig)
	})
	return cachedClient, clientErr
}

// ResolveKubeconfig returns the kubeconfig path to use, or "" when the
// in-cluster configuration should be used.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	path := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// BuildKubeClient creates a clientset without touching the process-wide cache.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := restConfig(ResolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, nil, err
	}

	config.QPS = defaults.K8sClientQPS
	config.Burst = defaults.K8sClientBurst
	config.UserAgent = rest.DefaultKubernetesUserAgent() + " " + UserAgent

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	// Using InClusterConfig directly avoids the
	// "Neither --kubeconfig nor --master was specified" warning.
	if kubeconfig == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
		return config, nil
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
	}
	return config, nil
}
