/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNotFound is matched by errors.Is when Update targets a missing entry.
var ErrNotFound = errors.New("not found")

// Store writes serialized documents by key.
type Store interface {
	// Update replaces the value stored under key. It returns an error
	// matching ErrNotFound when key does not exist.
	Update(ctx context.Context, key string, value []byte) error

	// Create stores value under a new key.
	Create(ctx context.Context, key string, value []byte) error
}

// Operation names the write Upsert performed.
type Operation string

const (
	OperationUpdate Operation = "update"
	OperationCreate Operation = "create"
)

// Upsert updates key and falls back to creating it when it does not exist.
// Concurrent writers are not coordinated; the last write wins.
func Upsert(ctx context.Context, s Store, key string, value []byte) (Operation, error) {
	err := s.Update(ctx, key, value)
	if err == nil {
		recordUpsert(OperationUpdate, nil)
		slog.Debug("stored document", "key", key, "operation", OperationUpdate, "bytes", len(value))
		return OperationUpdate, nil
	}
	if !errors.Is(err, ErrNotFound) {
		recordUpsert(OperationUpdate, err)
		return OperationUpdate, err
	}

	err = s.Create(ctx, key, value)
	recordUpsert(OperationCreate, err)
	if err != nil {
		return OperationCreate, err
	}
	slog.Debug("stored document", "key", key, "operation", OperationCreate, "bytes", len(value))
	return OperationCreate, nil
}
