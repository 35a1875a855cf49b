/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code      cnserrors.ErrorCode
		status    int
		retryable bool
	}{
		// rejected cluster definition
		{cnserrors.ErrCodeValidationFailed, http.StatusUnprocessableEntity, false},
		// body is not YAML or JSON
		{cnserrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		// schema or defaults could not be built
		{cnserrors.ErrCodeSchemaConstruction, http.StatusInternalServerError, false},
		// ConfigMap store down
		{cnserrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{cnserrors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{cnserrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{cnserrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{cnserrors.ErrCodeNotFound, http.StatusNotFound, false},
		{cnserrors.ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{cnserrors.ErrCodeInternal, http.StatusInternalServerError, true},
		{cnserrors.ErrorCode("UNKNOWN_HOST_ROLE"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.retryable, retryableFromCode(tt.code))
		})
	}
}

func TestWriteErrorFromErr(t *testing.T) {
	violations := errors.New("hosts[0].role must be one of: master, worker")

	tests := []struct {
		name        string
		err         error
		extra       map[string]any
		wantStatus  int
		wantCode    cnserrors.ErrorCode
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name: "rejected definition keeps context and cause",
			err: cnserrors.WrapWithContext(cnserrors.ErrCodeValidationFailed,
				"cluster definition is invalid", violations, map[string]any{"source": "cluster.yml"}),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    cnserrors.ErrCodeValidationFailed,
			wantMessage: "cluster definition is invalid",
			wantDetails: map[string]any{"source": "cluster.yml", "error": violations.Error()},
		},
		{
			name: "store failure behind fmt wrapping",
			err: fmt.Errorf("load cm://kube-system/cluster: %w",
				cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "failed to read cluster definition", errors.New("connection refused"))),
			extra:       map[string]any{"source": "cm://kube-system/cluster"},
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    cnserrors.ErrCodeUnavailable,
			wantMessage: "failed to read cluster definition",
			wantDetails: map[string]any{"source": "cm://kube-system/cluster", "error": "connection refused"},
		},
		{
			name:        "extra details override context",
			err:         cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "invalid cluster definition", nil, map[string]any{"line": float64(3)}),
			extra:       map[string]any{"line": float64(4)},
			wantStatus:  http.StatusBadRequest,
			wantCode:    cnserrors.ErrCodeInvalidRequest,
			wantMessage: "invalid cluster definition",
			wantDetails: map[string]any{"line": float64(4)},
		},
		{
			name:        "plain error becomes internal",
			err:         errors.New("yaml: line 1: did not find expected node content"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    cnserrors.ErrCodeInternal,
			wantMessage: "Failed to validate cluster definition",
			wantDetails: map[string]any{"error": "yaml: line 1: did not find expected node content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErrorFromErr(w, httptest.NewRequest(http.MethodPost, "/v1/validate", nil),
				tt.err, "Failed to validate cluster definition", tt.extra)

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantDetails, resp.Details)
			assert.Equal(t, retryableFromCode(tt.wantCode), resp.Retryable)
		})
	}
}

func TestWriteError_RequestID(t *testing.T) {
	// Outside the middleware a fresh id is generated.
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodPost, "/v1/validate", nil),
		http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest, "Invalid cluster definition", false, nil)
	resp := decodeError(t, w)
	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
	assert.Nil(t, resp.Details)
	assert.False(t, resp.Timestamp.IsZero())

	// Inside it, the body echoes the response header.
	h := New(WithHandler(map[string]http.HandlerFunc{
		"/v1/validate": func(w http.ResponseWriter, r *http.Request) {
			WriteErrorFromErr(w, r, cnserrors.New(cnserrors.ErrCodeValidationFailed, "cluster definition is invalid"), "", nil)
		},
	})).Handler()
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/validate", nil))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp = decodeError(t, w)
	assert.Equal(t, w.Header().Get(HeaderRequestID), resp.RequestID)
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, map[string]any{}))

	ctx := map[string]any{"source": "cluster.yml", "violations": 2}
	got := mergeDetails(ctx, map[string]any{"violations": 3})
	assert.Equal(t, map[string]any{"source": "cluster.yml", "violations": 3}, got)
	assert.Equal(t, 2, ctx["violations"], "inputs are not modified")
}
