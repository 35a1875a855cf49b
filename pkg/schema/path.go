/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a value in a nested document.
type Path []Segment

// Child returns a new path extended by a map key.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Key: key})
}

// At returns a new path extended by a sequence index.
func (p Path) At(index int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: index, IsIndex: true})
}

// String renders the path as "hosts[0].taints[1].effect".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			fmt.Fprintf(&b, "[%d]", s.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// ParsePath parses the String form of a path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	var p Path
	for _, part := range strings.Split(s, ".") {
		key, rest, found := strings.Cut(part, "[")
		if found && rest == "" {
			return nil, fmt.Errorf("invalid path %q: unterminated index", s)
		}
		if key == "" && len(p) == 0 {
			return nil, fmt.Errorf("invalid path %q: must start with a key", s)
		}
		if key != "" {
			p = append(p, Segment{Key: key})
		} else if rest == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", s)
		}
		for rest != "" {
			idx, tail, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, fmt.Errorf("invalid path %q: unterminated index", s)
			}
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid path %q: bad index %q", s, idx)
			}
			p = append(p, Segment{Index: n, IsIndex: true})
			if tail == "" {
				break
			}
			if !strings.HasPrefix(tail, "[") {
				return nil, fmt.Errorf("invalid path %q: unexpected %q", s, tail)
			}
			rest = tail[1:]
			if rest == "" {
				return nil, fmt.Errorf("invalid path %q: unterminated index", s)
			}
		}
	}
	return p, nil
}

// MustParsePath is ParsePath that panics on error. Intended for package-level
// rule declarations.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the value at p in doc and whether it exists.
func Lookup(doc any, p Path) (any, bool) {
	cur := doc
	for _, s := range p {
		if s.IsIndex {
			list, ok := asList(cur)
			if !ok || s.Index >= len(list) {
				return nil, false
			}
			cur = list[s.Index]
			continue
		}
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[s.Key]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}
