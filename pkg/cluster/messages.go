/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"github.com/NVIDIA/cluster-definition/pkg/schema"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no requested locale is supported.
var DefaultLocale = language.English

// Messages returns the English message table, built-ins included.
func Messages() schema.MessageTable {
	return schema.DefaultMessages().Merge(schema.MessageTable{
		KeyHostnameOrIP:       {Text: "%s is invalid", Args: []string{"subject"}},
		KeyUniqueAddresses:    {Text: "%s has duplicate address:ssh_port", Args: []string{"subject"}},
		KeyImageRepository:    {Text: "%s is not a valid image repository", Args: []string{"subject"}},
		KeyCIDR:               {Text: "%s must be a CIDR block", Args: []string{"subject"}},
		KeyNetworkDNSReplicas: {Text: "network.dns_replicas cannot be larger than the number of hosts"},
	})
}

// NewFormatter returns a formatter for the shipped locales.
func NewFormatter() (*schema.Formatter, error) {
	return schema.NewFormatter(DefaultLocale, map[language.Tag]schema.MessageTable{
		DefaultLocale: Messages(),
	})
}
