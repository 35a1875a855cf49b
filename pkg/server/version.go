/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"regexp"
	"slices"
)

// DefaultAPIVersion is served when the client does not ask for a version.
const DefaultAPIVersion = "v1"

// HeaderAPIVersion echoes the negotiated API version.
const HeaderAPIVersion = "X-API-Version"

var (
	supportedAPIVersions = []string{"v1"}

	// application/vnd.nvidia.clusterdef.v1+json
	vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.clusterdef\.(v\d+)\+json`)
)

// negotiateAPIVersion reads the version from a vendor Accept header and falls
// back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if m == nil || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	return slices.Contains(supportedAPIVersions, v)
}
