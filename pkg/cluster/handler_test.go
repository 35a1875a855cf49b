/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NVIDIA/cluster-definition/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func postValidate(t *testing.T, v *Validator, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	w := httptest.NewRecorder()
	v.HandleValidate(w, req)
	return w
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) Report {
	t.Helper()
	var r Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func TestHandleValidate(t *testing.T) {
	v := newTestValidator(t, WithVersion("v0.1.0"))

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantValid  bool
		wantErrors []string
	}{
		{
			name:       "valid yaml",
			target:     "/v1/validate",
			body:       "hosts:\n  - address: 10.0.0.1\n    role: master\n",
			wantStatus: http.StatusOK,
			wantValid:  true,
		},
		{
			name:       "valid json",
			target:     "/v1/validate",
			body:       `{"hosts": [{"address": "10.0.0.1", "role": "worker", "ssh_port": 22}]}`,
			wantStatus: http.StatusOK,
			wantValid:  true,
		},
		{
			name:       "empty body",
			target:     "/v1/validate",
			body:       "",
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: []string{"hosts is missing"},
		},
		{
			name:       "duplicate hosts",
			target:     "/v1/validate",
			body:       "hosts:\n  - {address: a, role: master}\n  - {address: a, role: worker}\n",
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: []string{"hosts has duplicate address:ssh_port"},
		},
		{
			name:       "dns replicas",
			target:     "/v1/validate",
			body:       "hosts:\n  - {address: a, role: master}\nnetwork:\n  dns_replicas: 2\n",
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: []string{"network.dns_replicas cannot be larger than the number of hosts"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postValidate(t, v, tt.target, tt.body, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			r := decodeReport(t, w)
			assert.Equal(t, tt.wantValid, r.Valid)
			assert.Equal(t, "v0.1.0", r.Version)
			assert.NotEmpty(t, r.ID)
			assert.Nil(t, r.Document)

			var got []string
			for _, e := range r.Errors {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantErrors, got)
		})
	}
}

func TestHandleValidate_Document(t *testing.T) {
	v := newTestValidator(t)
	w := postValidate(t, v, "/v1/validate?document=true", "hosts: [{address: a, role: master}]", nil)
	require.Equal(t, http.StatusOK, w.Code)

	r := decodeReport(t, w)
	require.NotNil(t, r.Document)
	assert.Contains(t, r.Document, "audit")
	assert.Contains(t, r.Document, "hosts")

	// Invalid documents never carry the normalized form.
	w = postValidate(t, v, "/v1/validate?document=true", "hosts: []", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, decodeReport(t, w).Document)
}

func TestHandleValidate_AcceptYAML(t *testing.T) {
	v := newTestValidator(t, WithVersion("v0.1.0"))
	w := postValidate(t, v, "/v1/validate", "hosts: [{address: a, role: admin}]",
		http.Header{"Accept": {"application/yaml"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var r Report
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, ReportKind, r.Kind)
	assert.Equal(t, "v0.1.0", r.Version)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "hosts[0].role", r.Errors[0].Path)
}

func TestHandleValidate_Locale(t *testing.T) {
	v := newTestValidator(t)
	tests := []struct {
		name   string
		target string
		header http.Header
	}{
		{"default", "/v1/validate", nil},
		{"query", "/v1/validate?locale=en-GB", nil},
		{"unsupported query", "/v1/validate?locale=de", nil},
		{"malformed query", "/v1/validate?locale=!!", http.Header{"Accept-Language": {"en-US"}}},
		{"accept language", "/v1/validate", http.Header{"Accept-Language": {"de-DE,en;q=0.5"}}},
		{"unsupported accept language", "/v1/validate", http.Header{"Accept-Language": {"ja"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postValidate(t, v, tt.target, "{}", tt.header)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			r := decodeReport(t, w)
			assert.Equal(t, "en", r.Locale)
			require.Len(t, r.Errors, 1)
			assert.Equal(t, "hosts is missing", r.Errors[0].Message)
		})
	}
}

func TestHandleValidate_Errors(t *testing.T) {
	v := newTestValidator(t)

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
		w := httptest.NewRecorder()
		v.HandleValidate(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))

		var resp server.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Code)
		assert.NotEmpty(t, resp.RequestID)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		w := postValidate(t, v, "/v1/validate", "hosts: [", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp server.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_REQUEST", resp.Code)
		assert.Equal(t, "Invalid cluster definition", resp.Message)
	})

	t.Run("not a mapping", func(t *testing.T) {
		w := postValidate(t, v, "/v1/validate", "- a\n- b\n", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(strings.Repeat("a", 64)))
		w := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(w, req.Body, 8)
		v.HandleValidate(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
