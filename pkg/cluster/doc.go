/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cluster defines the cluster definition contract and validates
// documents against it.
//
// A cluster definition lists the hosts to provision and the optional
// networking, authentication, audit and runtime settings. Validation merges
// the embedded defaults (data/defaults.yaml) into the document, checks every
// field, then runs the cross-field rules. All problems are reported at once.
//
// # Usage
//
//	v := cluster.MustNewValidator(cluster.WithVersion(version))
//
//	doc, err := v.Load(raw)
//	if err != nil {
//	    var cfgErr *cluster.ConfigError
//	    if errors.As(err, &cfgErr) {
//	        for path, msgs := range cfgErr.Messages {
//	            fmt.Println(path, msgs)
//	        }
//	    }
//	    return err
//	}
//
// # Contract
//
// hosts is required, must not be empty and must not repeat an
// address:ssh_port pair (ssh_port defaults to 22). Each host needs an address
// (dotted quad or lower-case hostname) and a role (master or worker).
// network.dns_replicas may not exceed the number of hosts.
//
// Besides the built-in predicates of pkg/schema the contract uses
// hostname_or_ip, unique_addresses, image_repository and cidr.
//
// # HTTP
//
// HandleValidate serves POST /v1/validate and answers with a Report.
package cluster
