/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

// Violation is a single problem found in a document. Exactly one of Path and
// Rule identifies it: per-field violations carry a Path, cross-field
// violations the Rule name.
type Violation struct {
	Path   Path
	Rule   string
	Kind   ErrorKind
	Key    MessageKey
	Params Params
	Value  any
}

// Subject returns the rule name or the rendered path.
func (v Violation) Subject() string {
	if v.Rule != "" {
		return v.Rule
	}
	if len(v.Path) == 0 {
		return "document"
	}
	return v.Path.String()
}

// Result is the outcome of a validation call.
type Result struct {
	// Document is the normalized document. It is set only when Valid.
	Document map[string]any

	// Violations lists every problem found, per-field ones in depth-first
	// declaration order followed by cross-field ones in rule order.
	Violations []Violation
}

// Valid reports whether the document passed.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// ByKind returns the violations of the given kind.
func (r *Result) ByKind(kind ErrorKind) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// For returns the violations whose Subject equals subject.
func (r *Result) For(subject string) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Subject() == subject {
			out = append(out, v)
		}
	}
	return out
}
