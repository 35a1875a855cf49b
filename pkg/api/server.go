/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package api wires the cluster definition validator into the HTTP server.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/cluster-definition/pkg/cluster"
	"github.com/NVIDIA/cluster-definition/pkg/logging"
	"github.com/NVIDIA/cluster-definition/pkg/server"
)

const (
	name           = "clusterdef-api"
	versionDefault = "dev"

	// ValidatePath is the validation endpoint.
	ValidatePath = "/v1/validate"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cluster-definition/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the schema cannot be built or the server fails.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	v, err := newValidator()
	if err != nil {
		slog.Error("failed to build validator", "error", err)
		return err
	}

	s := newServer(v)
	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newValidator stamps reports with the same version the server advertises.
func newValidator() (*cluster.Validator, error) {
	return cluster.NewValidator(cluster.WithVersion(version))
}

func newServer(v *cluster.Validator, opts ...server.Option) *server.Server {
	return server.New(append([]server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(v)),
		server.WithReadinessCheck("validator", v.SelfCheck),
	}, opts...)...)
}

func routes(v *cluster.Validator) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		ValidatePath: v.HandleValidate,
	}
}
