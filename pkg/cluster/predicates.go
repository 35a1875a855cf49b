/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"fmt"
	"regexp"

	"github.com/NVIDIA/cluster-definition/pkg/schema"
	"github.com/distribution/reference"
	netutils "k8s.io/utils/net"
)

// DefaultSSHPort is assumed for hosts that do not set ssh_port.
const DefaultSSHPort = 22

// Message keys of the cluster predicates and rules.
const (
	KeyHostnameOrIP       schema.MessageKey = "hostname_or_ip"
	KeyUniqueAddresses    schema.MessageKey = "unique_addresses"
	KeyImageRepository    schema.MessageKey = "image_repository"
	KeyCIDR               schema.MessageKey = "cidr"
	KeyNetworkDNSReplicas schema.MessageKey = "network_dns_replicas"
)

var (
	ipv4Pattern     = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
	hostnamePattern = regexp.MustCompile(`^[a-z0-9\-.]+$`)
)

func predicates() []schema.Predicate {
	return []schema.Predicate{
		{
			Name: string(KeyHostnameOrIP),
			Kind: schema.KindFormatViolation,
			Fn:   hostnameOrIP,
		},
		{
			Name:  string(KeyUniqueAddresses),
			Kind:  schema.KindCollectionConstraintViolation,
			Fn:    schema.UniqueBy(HostKey),
			Halts: true,
		},
		{
			Name: string(KeyImageRepository),
			Kind: schema.KindFormatViolation,
			Fn:   imageRepository,
		},
		{
			Name: string(KeyCIDR),
			Kind: schema.KindFormatViolation,
			Fn:   cidr,
		},
	}
}

// Registry returns the built-in predicates extended with the cluster ones.
func Registry() (*schema.Registry, error) {
	return schema.DefaultRegistry().With(predicates()...)
}

// hostnameOrIP accepts a dotted quad or a lower-case hostname. Octet ranges
// are not checked.
func hostnameOrIP(v any, _ schema.Params) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return ipv4Pattern.MatchString(s) || hostnamePattern.MatchString(s)
}

// HostKey identifies a host by address and SSH port, e.g. "10.0.0.1:22".
// Anything that is not a mapping has no key.
func HostKey(host any) string {
	h, ok := host.(map[string]any)
	if !ok {
		return ""
	}
	port, ok := h["ssh_port"]
	if !ok || port == nil {
		port = DefaultSSHPort
	}
	return fmt.Sprint(h["address"]) + ":" + fmt.Sprint(port)
}

// imageRepository accepts a repository name without tag or digest, such as
// "registry.example.com/kontena".
func imageRepository(v any, _ schema.Params) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	named, err := reference.ParseNormalizedNamed(s)
	return err == nil && reference.IsNameOnly(named)
}

func cidr(v any, _ schema.Params) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, _, err := netutils.ParseCIDRSloppy(s)
	return err == nil
}
