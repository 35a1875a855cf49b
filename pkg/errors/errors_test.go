/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{"no cause", New(ErrCodeNotFound, "config map missing"), "[NOT_FOUND] config map missing"},
		{"with cause", Wrap(ErrCodeInternal, "encode failed", stderrors.New("boom")), "[INTERNAL] encode failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_UnwrapChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("store: %w", Wrap(ErrCodeUnavailable, "update failed", cause))

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, ErrCodeUnavailable))
	assert.False(t, IsCode(err, ErrCodeInternal))

	se, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "update failed", se.Message)
}

func TestWrapWithContext_CopiesContext(t *testing.T) {
	ctx := map[string]any{"key": "cluster-config"}
	err := WrapWithContext(ErrCodeNotFound, "missing", nil, ctx)
	ctx["key"] = "changed"

	assert.Equal(t, "cluster-config", err.Context["key"])
	assert.Nil(t, WrapWithContext(ErrCodeNotFound, "missing", nil, nil).Context)
}

func TestAs_NotStructured(t *testing.T) {
	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsCode(nil, ErrCodeInternal))
}
