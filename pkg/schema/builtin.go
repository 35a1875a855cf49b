/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// KeyFunc derives the composite key of a collection element.
type KeyFunc func(item any) string

var defaultRegistry = mustRegistry(builtinPredicates()...)

// DefaultRegistry returns the registry of built-in predicates.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(defs ...Predicate) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

func builtinPredicates() []Predicate {
	return []Predicate{
		{Name: "str", Kind: KindTypeMismatch, Key: KeyStr, Fn: isString},
		{Name: "int", Kind: KindTypeMismatch, Key: KeyInt, Fn: isInt},
		{Name: "number", Kind: KindTypeMismatch, Key: KeyNumber, Fn: isNumber},
		{Name: "bool", Kind: KindTypeMismatch, Key: KeyBool, Fn: isBool},
		{Name: "hash", Kind: KindTypeMismatch, Key: KeyHash, Fn: isHash},
		{Name: "array", Kind: KindTypeMismatch, Key: KeyArray, Fn: isArray},
		{Name: "filled", Kind: KindMissingRequiredField, Key: KeyFilled, Fn: isFilled},
		{Name: "gt", Kind: KindFormatViolation, Key: KeyGt, Fn: compare(func(a, b float64) bool { return a > b }), Compile: requireNumber("num")},
		{Name: "lt", Kind: KindFormatViolation, Key: KeyLt, Fn: compare(func(a, b float64) bool { return a < b }), Compile: requireNumber("num")},
		{Name: "gteq", Kind: KindFormatViolation, Key: KeyGteq, Fn: compare(func(a, b float64) bool { return a >= b }), Compile: requireNumber("num")},
		{Name: "lteq", Kind: KindFormatViolation, Key: KeyLteq, Fn: compare(func(a, b float64) bool { return a <= b }), Compile: requireNumber("num")},
		{Name: "format", Kind: KindFormatViolation, Key: KeyFormat, Fn: matchesFormat, Compile: compilePattern},
		{Name: "included_in", Kind: KindEnumViolation, Key: KeyIncludedIn, Fn: isIncludedIn, Compile: compileList},
		{Name: "min_size", Kind: KindCollectionConstraintViolation, Key: KeyMinSize, Fn: minSize, Compile: requireSize},
		{Name: "max_size", Kind: KindCollectionConstraintViolation, Key: KeyMaxSize, Fn: maxSize, Compile: requireSize},
		{Name: "unique", Kind: KindCollectionConstraintViolation, Key: KeyUnique, Fn: isUnique, Compile: requireKeyFunc, Halts: true},
	}
}

func isString(v any, _ Params) bool {
	_, ok := v.(string)
	return ok
}

// isInt rejects floats even when integral, so "22.0" in YAML is not a port.
// JSON callers decoding with encoding/json should set UseNumber.
func isInt(v any, _ Params) bool {
	switch v.(type) {
	case float32, float64:
		return false
	}
	_, ok := toInt(v)
	return ok
}

func isNumber(v any, _ Params) bool {
	_, ok := toFloat(v)
	return ok
}

func isBool(v any, _ Params) bool {
	_, ok := v.(bool)
	return ok
}

func isHash(v any, _ Params) bool {
	_, ok := asMap(v)
	return ok
}

func isArray(v any, _ Params) bool {
	_, ok := asList(v)
	return ok
}

// isFilled rejects nil and empty strings, sequences and maps.
func isFilled(v any, _ Params) bool {
	if v == nil {
		return false
	}
	if n, ok := sizeOf(v); ok {
		return n > 0
	}
	return true
}

func compare(op func(a, b float64) bool) PredicateFunc {
	return func(v any, p Params) bool {
		got, ok := toFloat(v)
		if !ok {
			return false
		}
		want, ok := toFloat(p["num"])
		return ok && op(got, want)
	}
}

func requireNumber(name string) func(Params) (Params, error) {
	return func(p Params) (Params, error) {
		if _, ok := toFloat(p[name]); !ok {
			return nil, fmt.Errorf("param %q must be a number, got %T", name, p[name])
		}
		return p, nil
	}
}

func requireSize(p Params) (Params, error) {
	n, ok := toInt(p["num"])
	if !ok || n < 0 {
		return nil, fmt.Errorf("param %q must be a non-negative integer, got %v", "num", p["num"])
	}
	return p, nil
}

func minSize(v any, p Params) bool {
	n, ok := sizeOf(v)
	want, _ := toInt(p["num"])
	return ok && int64(n) >= want
}

func maxSize(v any, p Params) bool {
	n, ok := sizeOf(v)
	want, _ := toInt(p["num"])
	return ok && int64(n) <= want
}

func compilePattern(p Params) (Params, error) {
	pattern, ok := p["pattern"].(string)
	if !ok || pattern == "" {
		return nil, errors.New(`param "pattern" must be a non-empty string`)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	p["regexp"] = re
	return p, nil
}

func matchesFormat(v any, p Params) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	re, ok := p["regexp"].(*regexp.Regexp)
	return ok && re.MatchString(s)
}

// compileList normalizes "list" to []string and rejects an empty allowed set.
func compileList(p Params) (Params, error) {
	var list []string
	switch l := p["list"].(type) {
	case []string:
		list = slices.Clone(l)
	case []any:
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf(`param "list" must contain strings, got %T`, item)
			}
			list = append(list, s)
		}
	default:
		return nil, fmt.Errorf(`param "list" must be a list of strings, got %T`, p["list"])
	}
	if len(list) == 0 {
		return nil, errors.New("allowed set cannot be empty")
	}
	p["list"] = list
	return p, nil
}

func isIncludedIn(v any, p Params) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	list, _ := p["list"].([]string)
	return slices.Contains(list, s)
}

func requireKeyFunc(p Params) (Params, error) {
	if fn, ok := p["key"].(KeyFunc); !ok || fn == nil {
		return nil, errors.New(`param "key" must be a schema.KeyFunc`)
	}
	return p, nil
}

func isUnique(v any, p Params) bool {
	fn, _ := p["key"].(KeyFunc)
	return UniqueBy(fn)(v, p)
}

// UniqueBy returns a predicate that holds when no two elements of a collection
// share a key. An empty key marks an element that has no identity, such as a
// host that is not a mapping; those never collide and are left to the item
// checks.
func UniqueBy(key KeyFunc) PredicateFunc {
	return func(v any, _ Params) bool {
		list, ok := asList(v)
		if !ok {
			return false
		}
		seen := make(map[string]struct{}, len(list))
		for _, item := range list {
			k := key(item)
			if k == "" {
				continue
			}
			if _, dup := seen[k]; dup {
				return false
			}
			seen[k] = struct{}{}
		}
		return true
	}
}
