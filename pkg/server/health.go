/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
)

const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"

	checkOK = "ok"
)

// ReadinessCheck returns an error while a dependency cannot serve requests.
type ReadinessCheck func(ctx context.Context) error

// WithReadinessCheck adds a named check to /ready. Checks run on every probe
// in name order and share the request context.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string            `json:"status" yaml:"status"`
	Name      string            `json:"name" yaml:"name"`
	Version   string            `json:"version" yaml:"version"`
	Uptime    string            `json:"uptime" yaml:"uptime"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks    map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

func (s *Server) healthResponse(status string) HealthResponse {
	now := time.Now().UTC()
	return HealthResponse{
		Status:    status,
		Name:      s.name,
		Version:   s.version,
		Uptime:    now.Sub(s.started).Truncate(time.Second).String(),
		Timestamp: now,
	}
}

// allowGet rejects anything but GET and HEAD with a structured 405.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

// handleHealth reports liveness. It never consults readiness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.healthResponse(StatusHealthy))
}

// handleReady returns 503 until the listener is up and every readiness check
// passes.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	if !s.IsReady() {
		resp := s.healthResponse(StatusNotReady)
		resp.Reason = "server is not accepting connections"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := s.healthResponse(StatusReady)
	failed := s.runChecks(r.Context(), &resp)
	if failed > 0 {
		resp.Status = StatusNotReady
		resp.Reason = "readiness check failed"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) runChecks(ctx context.Context, resp *HealthResponse) (failed int) {
	if len(s.checks) == 0 {
		return 0
	}
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	slices.Sort(names)

	resp.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			resp.Checks[name] = err.Error()
			failed++
			continue
		}
		resp.Checks[name] = checkOK
	}
	return failed
}
