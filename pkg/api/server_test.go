/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...server.Option) http.Handler {
	t.Helper()
	v, err := newValidator()
	require.NoError(t, err)
	return newServer(v, opts...).Handler()
}

func TestRoutes(t *testing.T) {
	r := routes(cluster.MustNewValidator())
	require.Len(t, r, 1)
	assert.NotNil(t, r[ValidatePath])
}

func TestValidateEndpoint(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{"valid", http.MethodPost, "hosts: [{address: 10.0.0.1, role: master}]", http.StatusOK},
		{"invalid", http.MethodPost, "hosts: [{address: 10.0.0.1, role: admin}]", http.StatusUnprocessableEntity},
		{"malformed", http.MethodPost, "hosts: [", http.StatusBadRequest},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, ValidatePath, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get(server.HeaderRequestID))
		})
	}
}

func TestValidateEndpointReport(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, ValidatePath,
		strings.NewReader(`{"hosts": [{"address": "a", "role": "master"}], "network": {"dns_replicas": 3}}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var report cluster.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, version, report.Version)
	assert.Equal(t, versionDefault, report.Version)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "network_dns_replicas", report.Errors[0].Rule)
}

func TestValidateEndpointBodyLimit(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.MaxBodyBytes = 16
	h := newTestServer(t, server.WithConfig(cfg))

	req := httptest.NewRequest(http.MethodPost, ValidatePath,
		strings.NewReader("hosts: [{address: 10.0.0.1, role: master}]"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthAndReadyEndpoints(t *testing.T) {
	v, err := newValidator()
	require.NoError(t, err)
	s := newServer(v)

	// Not listening yet.
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp server.HealthResponse
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, name, resp.Name)
	assert.Equal(t, version, resp.Version)
}
