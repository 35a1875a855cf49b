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

// Package cli implements the clusterdef command-line interface.
//
// # Overview
//
// clusterdef checks cluster definitions (the YAML document describing hosts,
// network, authentication and add-ons of a Kubernetes cluster) before they
// are handed to a provisioner, and stores validated definitions in the
// cluster itself.
//
// # Commands
//
// validate - Validate one or more definitions:
//
//	clusterdef validate cluster.yml
//	clusterdef validate --format json prod.yml staging.yml
//	clusterdef validate --document -o normalized.yaml cluster.yml
//	clusterdef validate cm://kube-system/cluster-config
//	cat cluster.yml | clusterdef validate -
//
// Sources are validated concurrently. A report is printed per source, in
// argument order. The command exits non-zero when any definition is invalid.
//
// store - Validate and store a definition:
//
//	clusterdef store cluster.yml
//	clusterdef store --namespace infra --name prod-cluster cluster.yml
//
// The normalized document is written as YAML to the ConfigMap data key
// cluster.yml, updating the ConfigMap when it exists and creating it
// otherwise.
//
// defaults - Print the default document:
//
//	clusterdef defaults --format json
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Command Flags
//
//	--output, -o      Output file path or cm://namespace/name (default: stdout)
//	--format, -t      Output format: yaml, json, table (default: yaml)
//	--locale, -l      Message language (default: en)
//	--kubeconfig, -k  Path to kubeconfig file
//
// # Environment Variables
//
//	LOG_LEVEL   Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG  Path to kubeconfig file
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid definition, invalid arguments, I/O failure)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/cluster - Cluster definition schema, defaults and reports
//   - pkg/schema - Validation engine
//   - pkg/store - ConfigMap persistence
//   - pkg/serializer - Input sources and output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cluster-definition/pkg/cli.version=1.0.0'"
package cli
