/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NVIDIA/cluster-definition/pkg/serializer"
	"github.com/stretchr/testify/assert"
)

func TestAPIVersionNegotiation(t *testing.T) {
	tests := []struct {
		name        string
		accept      string
		wantVersion string
		wantFormat  serializer.Format
	}{
		{"no accept", "", DefaultAPIVersion, serializer.FormatJSON},
		{"plain json", "application/json", DefaultAPIVersion, serializer.FormatJSON},
		{"yaml report", "application/yaml", DefaultAPIVersion, serializer.FormatYAML},
		{"clusterdef v1", "application/vnd.nvidia.clusterdef.v1+json", "v1", serializer.FormatJSON},
		{"clusterdef v1 among others", "text/html, application/vnd.nvidia.clusterdef.v1+json;q=0.8", "v1", serializer.FormatJSON},
		{"yaml preferred over clusterdef v1", "application/yaml, application/vnd.nvidia.clusterdef.v1+json", "v1", serializer.FormatYAML},
		{"unsupported clusterdef v2", "application/vnd.nvidia.clusterdef.v2+json", DefaultAPIVersion, serializer.FormatJSON},
		{"malformed clusterdef version", "application/vnd.nvidia.clusterdef.latest+json", DefaultAPIVersion, serializer.FormatJSON},
		{"other vendor", "application/vnd.example.v1+json", DefaultAPIVersion, serializer.FormatJSON},
	}

	h := testServer().Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/echo", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.wantVersion, negotiateAPIVersion(req))
			assert.Equal(t, tt.wantFormat, serializer.NegotiateFormat(req), "report encoding is negotiated independently")

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.wantVersion, w.Header().Get(HeaderAPIVersion))
		})
	}
}

func TestSupportedAPIVersions(t *testing.T) {
	for _, v := range supportedAPIVersions {
		assert.True(t, isValidAPIVersion(v), v)
	}
	assert.True(t, isValidAPIVersion(DefaultAPIVersion))
	for _, v := range []string{"", "v0", "v2", "V1", "1"} {
		assert.False(t, isValidAPIVersion(v), v)
	}
}
