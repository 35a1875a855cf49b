/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

var yamlMediaTypes = map[string]bool{
	ContentTypeYAML:      true,
	"application/x-yaml": true,
	"text/yaml":          true,
	"text/x-yaml":        true,
}

// NegotiateFormat returns FormatYAML when the first recognized media type in
// the Accept header is a YAML type, and FormatJSON otherwise. Quality values
// are not weighed.
func NegotiateFormat(r *http.Request) Format {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if yamlMediaTypes[mt] {
			return FormatYAML
		}
		if mt == ContentTypeJSON || strings.HasSuffix(mt, "+json") || mt == "*/*" {
			return FormatJSON
		}
	}
	return FormatJSON
}

// Respond writes data in the format the request accepts.
func Respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	respond(w, status, NegotiateFormat(r), data)
}

// RespondJSON writes data as JSON.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	respond(w, status, FormatJSON, data)
}

// respond encodes the whole body before touching the headers, so an encoding
// failure still yields a clean 500.
func respond(w http.ResponseWriter, status int, format Format, data any) {
	payload, err := Marshal(format, data)
	if err != nil {
		slog.Error("response encoding failed", "format", format, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	contentType := ContentTypeJSON
	if format == FormatYAML {
		contentType = ContentTypeYAML
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		slog.Warn("response write failed", "status", status, "error", err)
	}
}
