/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
	"github.com/NVIDIA/cluster-definition/pkg/serializer"
	"github.com/NVIDIA/cluster-definition/pkg/server"
	"golang.org/x/text/language"
)

// HandleValidate validates the cluster definition in the request body.
// The body may be YAML or JSON. The response is a Report: 200 when the
// document is valid, 422 otherwise. It is JSON unless the Accept header asks
// for YAML.
//
// Messages follow the Accept-Language header unless the locale query
// parameter is set. document=true adds the normalized document to a valid
// report.
//
// Example:
//
//	POST /v1/validate?document=true
//	Content-Type: application/yaml
//	Body: hosts: [{address: 10.0.0.1, role: master}]
func (v *Validator) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		server.WriteError(w, r, status, cnserrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	doc, err := serializer.DecodeDocument(body)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Invalid cluster definition", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	opts := []ReportOption{ReportLocale(v.requestLocale(r))}
	if withDoc, _ := strconv.ParseBool(r.URL.Query().Get("document")); withDoc {
		opts = append(opts, ReportDocument())
	}

	res := v.Validate(doc)
	report := v.Report(res, opts...)

	slog.Debug("validate request handled",
		"request_id", server.RequestID(r.Context()),
		"report_id", report.ID,
		"valid", report.Valid,
		"errors", len(report.Errors),
	)

	status := http.StatusOK
	if !report.Valid {
		status = http.StatusUnprocessableEntity
	}
	serializer.Respond(w, r, status, report)
}

func (v *Validator) requestLocale(r *http.Request) language.Tag {
	if l := r.URL.Query().Get("locale"); l != "" {
		if tag, err := language.Parse(l); err == nil {
			return v.formatter.Match(tag)
		}
	}
	if h := r.Header.Get("Accept-Language"); h != "" {
		return v.formatter.MatchAcceptLanguage(h)
	}
	return v.locale
}
