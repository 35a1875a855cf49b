/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package client builds the Kubernetes clientset used to read and store
// cluster definitions in ConfigMaps.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NVIDIA/cluster-definition/pkg/defaults"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// UserAgent identifies clusterdef to the API server.
const UserAgent = "clusterdef"

var (
	clientOnce   sync.Once
	cachedClient kubernetes.Interface
	clientErr    error
)

// GetKubeClient returns a process-wide client built from the default
// kubeconfig discovery. See BuildKubeClient.
func GetKubeClient() (kubernetes.Interface, error) {
	clientOnce.Do(func() {
		cachedClient, _, clientErr = BuildKubeClient("")
	})
	return cachedClient, clientErr
}

// ResolveKubeconfig picks the kubeconfig path: the explicit path, then
// KUBECONFIG, then ~/.kube/config when it exists. An empty result selects the
// in-cluster service account.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); env != "" {
		return env
	}
	path := filepath.Join(homedir.HomeDir(), clientcmd.RecommendedHomeDir, clientcmd.RecommendedFileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// BuildKubeClient creates a client from kubeconfig, bypassing the cache.
// Requests are bounded by defaults.KubernetesTimeout.
func BuildKubeClient(kubeconfig string) (kubernetes.Interface, *rest.Config, error) {
	config, err := clientcmd.BuildConfigFromFlags("", ResolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build kube config: %w", err)
	}
	config.Timeout = defaults.KubernetesTimeout
	config.UserAgent = UserAgent

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}
