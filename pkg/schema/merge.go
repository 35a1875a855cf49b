/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

// Merge deep-merges defaults into raw and returns a new document. Keys only in
// defaults get a deep copy of the default value. Keys in both merge
// recursively when both values are maps; otherwise the raw value replaces the
// default wholesale, sequences included. A raw null never replaces a map
// default, so "audit: ~" keeps the audit defaults. Neither input is modified
// and the result shares no maps or slices with either of them.
func Merge(raw, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+len(defaults))
	for k, dv := range defaults {
		out[k] = DeepCopy(dv)
	}
	for k, rv := range raw {
		if dv, ok := defaults[k]; ok {
			rm, rok := asMap(rv)
			dm, dok := asMap(dv)
			if rok && dok {
				out[k] = Merge(rm, dm)
				continue
			}
			if rv == nil && dok {
				continue
			}
		}
		out[k] = DeepCopy(rv)
	}
	return out
}

// DeepCopy copies maps and sequences recursively. Maps come back as
// map[string]any and sequences as []any; scalars are returned as is.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = DeepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = DeepCopy(val)
		}
		return out
	}

	if m, ok := asMap(v); ok {
		return DeepCopy(m)
	}
	if l, ok := asList(v); ok {
		return DeepCopy(l)
	}
	return v
}
