/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"path/filepath"
	"strings"
)

// Format is an output or input encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

var supportedFormats = []Format{FormatJSON, FormatYAML, FormatTable}

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	for _, s := range supportedFormats {
		if f == s {
			return false
		}
	}
	return true
}

// SupportedFormats returns the supported format names.
func SupportedFormats() []string {
	out := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		out[i] = string(f)
	}
	return out
}

// formatFromPath guesses the input encoding from a file extension. Anything
// that is not .json is read as YAML, which also accepts JSON.
func formatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
