/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRespond_NegotiatesReportFormat(t *testing.T) {
	report := failingReport(t)

	tests := []struct {
		name   string
		accept string
		want   serializer.Format
	}{
		{"no accept header", "", serializer.FormatJSON},
		{"json", "application/json", serializer.FormatJSON},
		{"vendor json", "application/vnd.nvidia.clusterdef.v1+json", serializer.FormatJSON},
		{"anything", "*/*", serializer.FormatJSON},
		{"yaml", "application/yaml", serializer.FormatYAML},
		{"legacy yaml", "application/x-yaml", serializer.FormatYAML},
		{"first recognized wins", "text/html, text/yaml;q=0.9, application/json", serializer.FormatYAML},
		{"json before yaml", "application/json, application/yaml", serializer.FormatJSON},
		{"malformed entries skipped", ";;, application/yaml", serializer.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			assert.Equal(t, tt.want, serializer.NegotiateFormat(req))

			w := httptest.NewRecorder()
			serializer.Respond(w, req, http.StatusUnprocessableEntity, report)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var got cluster.Report
			if tt.want == serializer.FormatYAML {
				assert.Equal(t, serializer.ContentTypeYAML, w.Header().Get("Content-Type"))
				require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &got))
			} else {
				assert.Equal(t, serializer.ContentTypeJSON, w.Header().Get("Content-Type"))
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			}
			assert.Equal(t, *report, got)
		})
	}
}

func TestRespondJSON_ValidReport(t *testing.T) {
	report := passingReport(t)

	w := httptest.NewRecorder()
	serializer.RespondJSON(w, http.StatusOK, report)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, serializer.ContentTypeJSON, w.Header().Get("Content-Type"))

	var got cluster.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Valid)
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, reportVersion, got.Version)
}

func TestRespond_EncodingFailureIsCleanServerError(t *testing.T) {
	bad := map[string]any{"document": make(chan int)}

	for _, accept := range []string{"application/json", "application/yaml"} {
		t.Run(accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
			req.Header.Set("Accept", accept)
			w := httptest.NewRecorder()
			serializer.Respond(w, req, http.StatusOK, bad)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "internal server error")
			assert.NotEqual(t, serializer.ContentTypeJSON, w.Header().Get("Content-Type"))
			assert.NotEqual(t, serializer.ContentTypeYAML, w.Header().Get("Content-Type"))
		})
	}
}
