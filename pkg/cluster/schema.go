/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import "github.com/NVIDIA/cluster-definition/pkg/schema"

// Allowed values of enumerated fields.
var (
	HostRoles          = []string{"master", "worker"}
	TaintEffects       = []string{"NoSchedule", "NoExecute"}
	HostRuntimes       = []string{"docker", "custom_docker", "cri-o"}
	NetworkProviders   = []string{"weave", "calico", "custom"}
	FirewalldProtocols = []string{"tcp", "udp"}
	FirewalldRoles     = []string{"master", "worker", "*"}
	WeaveIPAllocInit   = []string{"observer"}
	CalicoIPIPModes    = []string{"Always", "CrossSubnet", "Never"}
	CloudProviders     = []string{"aws", "hcloud", "packet", "external"}
	KubeProxyModes     = []string{"userspace", "iptables", "ipvs"}
)

func filled(checks ...schema.CheckSpec) *schema.LeafBuilder {
	return schema.Leaf(append([]schema.CheckSpec{schema.Pred("filled")}, checks...)...)
}

func str(extra ...schema.CheckSpec) *schema.LeafBuilder {
	return filled(append([]schema.CheckSpec{schema.Pred("str")}, extra...)...)
}

func boolean() *schema.LeafBuilder { return filled(schema.Pred("bool")) }

func hash() *schema.LeafBuilder { return filled(schema.Pred("hash")) }

func oneOf(list []string) schema.CheckSpec {
	return schema.Pred("included_in", schema.Params{"list": list})
}

func positiveInt() *schema.LeafBuilder {
	return filled(schema.Pred("int"), schema.Pred("gt", schema.Params{"num": 0}))
}

func port() *schema.LeafBuilder {
	return filled(schema.Pred("int"), schema.Pred("gt", schema.Params{"num": 0}), schema.Pred("lt", schema.Params{"num": 65536}))
}

func address() *schema.LeafBuilder { return str(schema.Pred(string(KeyHostnameOrIP))) }

func stringList() *schema.CollectionBuilder { return schema.Collection(schema.Leaf(schema.Pred("str"))) }

func cidrs() *schema.CollectionBuilder { return schema.Collection(schema.Leaf(schema.Pred("str"), schema.Pred(string(KeyCIDR)))) }

// Schema returns the cluster definition contract. Children are validated in
// the order declared here.
func Schema() schema.Builder {
	return schema.Object(
		schema.Required("hosts", schema.Collection(host(),
			schema.Pred("min_size", schema.Params{"num": 1}),
			schema.Pred(string(KeyUniqueAddresses)),
		)),
		schema.Optional("name", str()),
		schema.Optional("api", schema.Object(
			schema.Optional("endpoint", str()),
		)),
		schema.Optional("network", network()),
		schema.Optional("etcd", schema.Object(
			schema.Required("endpoints", stringList()),
			schema.Optional("certificate", str()),
			schema.Optional("ca_certificate", str()),
			schema.Optional("key", str()),
		)),
		schema.Optional("authentication", authentication()),
		schema.Optional("cloud", schema.Object(
			schema.Required("provider", filled(oneOf(CloudProviders))),
			schema.Optional("config", str()),
		)),
		schema.Optional("audit", schema.Object(
			schema.Optional("webhook", schema.Object(
				schema.Required("server", str()),
			)),
			schema.Optional("file", schema.Object(
				schema.Required("path", str()),
				schema.Required("max_age", positiveInt()),
				schema.Required("max_size", positiveInt()),
				schema.Required("max_backups", positiveInt()),
			)),
		)),
		schema.Optional("kube_proxy", schema.Object(
			schema.Optional("mode", filled(oneOf(KubeProxyModes))),
		)),
		schema.Optional("addon_paths", stringList()),
		schema.Optional("addons", schema.Leaf(schema.Pred("hash"))),
		schema.Optional("kubelet", schema.Object(
			schema.Optional("read_only_port", boolean()),
			schema.Optional("feature_gates", filled()),
			schema.Optional("extra_args", stringList()),
			schema.Optional("cpu_cfs_quota", boolean()),
			schema.Optional("cpu_cfs_quota_period", str()),
		)),
		schema.Optional("control_plane", schema.Object(
			schema.Optional("use_proxy", boolean()),
			schema.Optional("feature_gates", filled()),
		)),
		schema.Optional("telemetry", schema.Object(
			schema.Optional("enabled", boolean()),
		)),
		schema.Optional("image_repository", str(schema.Pred(string(KeyImageRepository)))),
		schema.Optional("pod_security_policy", schema.Object(
			schema.Optional("default_policy", str()),
		)),
		schema.Optional("admission_plugins", schema.Collection(
			schema.Object(
				schema.Required("name", str()),
				schema.Optional("enabled", boolean()),
			),
			schema.Pred("min_size", schema.Params{"num": 1}),
		)),
		schema.Optional("container_runtime", schema.Object(
			schema.Optional("insecure_registries", stringList()),
		)),
	)
}

func host() schema.Builder {
	return schema.Object(
		schema.Required("address", address()),
		schema.Optional("private_address", address()),
		schema.Optional("private_interface", filled()),
		schema.Required("role", filled(oneOf(HostRoles))),
		schema.Optional("labels", filled()),
		schema.Optional("taints", schema.Collection(schema.Object(
			schema.Optional("key", str()),
			schema.Optional("value", str()),
			schema.Required("effect", filled(oneOf(TaintEffects))),
		))),
		schema.Optional("user", filled()),
		schema.Optional("ssh_key_path", filled()),
		schema.Optional("ssh_port", port()),
		schema.Optional("ssh_proxy_command", str()),
		schema.Optional("container_runtime", filled(oneOf(HostRuntimes))),
		schema.Optional("environment", filled()),
		schema.Optional("bastion", schema.Object(
			schema.Required("address", address()),
			schema.Optional("user", str()),
			schema.Optional("ssh_key_path", str()),
			schema.Optional("ssh_port", port()),
			schema.Optional("ssh_proxy_command", str()),
		)),
		schema.Optional("repositories", schema.Collection(schema.Object(
			schema.Required("name", str()),
			schema.Required("contents", str()),
			schema.Optional("key_url", str()),
		))),
	)
}

func network() schema.Builder {
	return schema.Object(
		schema.Optional("provider", filled(oneOf(NetworkProviders))),
		schema.Optional("dns_replicas", positiveInt()),
		schema.Optional("service_cidr", str(schema.Pred(string(KeyCIDR)))),
		schema.Optional("pod_network_cidr", str(schema.Pred(string(KeyCIDR)))),
		schema.Optional("node_local_dns_cache", boolean()),
		schema.Optional("firewalld", schema.Object(
			schema.Required("enabled", boolean()),
			schema.Optional("open_ports", schema.Collection(
				schema.Object(
					schema.Required("port", str()),
					schema.Required("protocol", filled(oneOf(FirewalldProtocols))),
					schema.Required("roles", schema.Collection(schema.Leaf(schema.Pred("str"), oneOf(FirewalldRoles)))),
				),
				schema.Pred("min_size", schema.Params{"num": 1}),
			)),
			schema.Optional("trusted_subnets", cidrs()),
		)),
		schema.Optional("weave", schema.Object(
			schema.Optional("trusted_subnets", cidrs()),
			schema.Optional("known_peers", stringList()),
			schema.Optional("password", str()),
			schema.Optional("ipalloc_default_subnet", str(schema.Pred(string(KeyCIDR)))),
			schema.Optional("ipalloc_init", filled(oneOf(WeaveIPAllocInit))),
			schema.Optional("no_masq_local", boolean()),
		)),
		schema.Optional("calico", schema.Object(
			schema.Optional("ipip_mode", filled(oneOf(CalicoIPIPModes))),
			schema.Optional("nat_outgoing", boolean()),
			schema.Optional("environment", hash()),
			schema.Optional("mtu", positiveInt()),
		)),
		schema.Optional("custom", schema.Object(
			schema.Required("manifest_path", str()),
			schema.Optional("options", hash()),
		)),
	)
}

func authentication() schema.Builder {
	return schema.Object(
		schema.Optional("token_webhook", schema.Object(
			schema.Required("config", schema.Object(
				schema.Required("cluster", schema.Object(
					schema.Required("name", filled()),
					schema.Required("server", filled()),
					schema.Optional("certificate_authority", filled()),
				)),
				schema.Required("user", schema.Object(
					schema.Required("name", filled()),
					schema.Optional("client_certificate", filled()),
					schema.Optional("client_key", filled()),
				)),
			)),
			schema.Optional("cache_ttl", filled()),
		)),
		schema.Optional("oidc", schema.Object(
			schema.Required("issuer_url", str()),
			schema.Required("client_id", str()),
			schema.Optional("username_claim", str()),
			schema.Optional("username_prefix", str()),
			schema.Optional("groups_claim", str()),
			schema.Optional("groups_prefix", str()),
			schema.Optional("ca_file", str()),
		)),
	)
}
