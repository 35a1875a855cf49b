/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import "github.com/NVIDIA/cluster-definition/pkg/schema"

// Rules returns the cross-field rules in evaluation order.
func Rules() []schema.Rule {
	return []schema.Rule{
		schema.NewRule(string(KeyNetworkDNSReplicas), dnsReplicasWithinHosts,
			"network.dns_replicas", "hosts"),
	}
}

// dnsReplicasWithinHosts holds when network.dns_replicas does not exceed the
// host count. Absent or non-integer replicas pass; the field checks report the
// latter.
func dnsReplicasWithinHosts(v []schema.Value) bool {
	replicas, ok := v[0].Int()
	if !ok {
		return true
	}
	return replicas <= int64(v[1].Len())
}
