// Package defaults provides centralized configuration constants for clusterdef.
//
// This package defines timeout values, Kubernetes object names and size limits
// used across the codebase. Centralizing these values ensures consistency and
// makes tuning easier.
//
// # Categories
//
//   - Kubernetes: ConfigMap location and API call timeout for the store phase
//   - HTTP client: timeout for fetching remote cluster definitions
//   - Server: HTTP server timeouts and request body limits
//
// # Usage
//
//	import "github.com/NVIDIA/cluster-definition/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
//	defer cancel()
package defaults
