/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Kubernetes settings.
const (
	// KubernetesTimeout bounds a single ConfigMap read or write.
	KubernetesTimeout = 30 * time.Second

	// ConfigMapNamespace is where the cluster definition is stored.
	ConfigMapNamespace = "kube-system"

	// ConfigMapName is the default name of the stored cluster definition.
	ConfigMapName = "cluster-config"

	// ConfigMapDataKey is the ConfigMap data key that holds the document.
	ConfigMapDataKey = "cluster.yml"
)

// HTTP client and server settings.
const (
	HTTPClientTimeout = 30 * time.Second

	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second

	// MaxDocumentBytes caps request bodies and remote documents.
	MaxDocumentBytes = 4 << 20
)
