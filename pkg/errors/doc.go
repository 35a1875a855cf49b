/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors shared across clusterdef packages.
//
// A StructuredError carries a stable ErrorCode, a human-readable message, an
// optional wrapped cause and optional key/value context. HTTP handlers map the
// code to a status (see pkg/server) and the CLI prints the message chain.
//
//	err := errors.Wrap(errors.ErrCodeUnavailable, "failed to store cluster config", cause)
//	if errors.IsCode(err, errors.ErrCodeUnavailable) {
//	    // retry
//	}
package errors
