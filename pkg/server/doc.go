/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package server provides the HTTP server shared by the clusterdef API.
//
// The server owns the process-level concerns: routing, request ids, rate
// limiting, panic recovery, health and readiness probes, the Prometheus
// metrics endpoint and graceful shutdown. Domain handlers are supplied by the
// caller:
//
//	s := server.New(
//	    server.WithName("clusterdef-api"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/validate": h.HandleValidate,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Errors are written as ErrorResponse documents. WriteErrorFromErr maps the
// code of a structured error from pkg/errors to the HTTP status.
package server
