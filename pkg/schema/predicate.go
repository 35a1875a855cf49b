/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Params parameterizes a predicate, e.g. {"num": 0} for "gt".
type Params map[string]any

// PredicateFunc is a pure, total check. It must not panic; the evaluator
// treats a panic as a failed check.
type PredicateFunc func(value any, params Params) bool

// Predicate is a named check together with how its failures are reported.
type Predicate struct {
	// Name is the registry key used by Pred.
	Name string

	// Kind classifies failures of this predicate.
	Kind ErrorKind

	// Key selects the failure message. Defaults to Name.
	Key MessageKey

	// Fn performs the check.
	Fn PredicateFunc

	// Compile validates and prepares params when a schema is built. A nil
	// Compile accepts any params unchanged.
	Compile func(Params) (Params, error)

	// Halts marks collection predicates whose failure suppresses validation
	// of the collection's items.
	Halts bool
}

// Registry is an immutable name to Predicate table.
type Registry struct {
	preds map[string]Predicate
}

// NewRegistry builds a registry from defs. Names must be unique and non-empty
// and every definition needs a Fn.
func NewRegistry(defs ...Predicate) (*Registry, error) {
	r := &Registry{preds: make(map[string]Predicate, len(defs))}
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// With returns a new registry holding r's predicates plus defs. r is unchanged.
func (r *Registry) With(defs ...Predicate) (*Registry, error) {
	out := &Registry{preds: maps.Clone(r.preds)}
	if out.preds == nil {
		out.preds = make(map[string]Predicate, len(defs))
	}
	if err := out.add(defs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Registry) add(defs []Predicate) error {
	var errs []error
	for _, d := range defs {
		switch {
		case d.Name == "":
			errs = append(errs, errors.New("predicate name cannot be empty"))
			continue
		case d.Fn == nil:
			errs = append(errs, fmt.Errorf("predicate %q has no function", d.Name))
			continue
		}
		if _, dup := r.preds[d.Name]; dup {
			errs = append(errs, fmt.Errorf("predicate %q registered twice", d.Name))
			continue
		}
		if d.Key == "" {
			d.Key = MessageKey(d.Name)
		}
		if d.Kind == "" {
			d.Kind = KindFormatViolation
		}
		r.preds[d.Name] = d
	}
	if len(errs) > 0 {
		return constructionFault("invalid predicate registry", errors.Join(errs...))
	}
	return nil
}

// Lookup returns the predicate registered under name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	p, ok := r.preds[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.preds))
}

// Check is a predicate bound to compiled params, as stored in a Node.
type Check struct {
	pred   Predicate
	params Params
}

// Name returns the predicate name.
func (c Check) Name() string { return c.pred.Name }

// Kind returns the kind reported when the check fails.
func (c Check) Kind() ErrorKind { return c.pred.Kind }

// Key returns the message key reported when the check fails.
func (c Check) Key() MessageKey { return c.pred.Key }

// Halts reports whether a failure suppresses item validation.
func (c Check) Halts() bool { return c.pred.Halts }

// Params returns a copy of the compiled params.
func (c Check) Params() Params { return maps.Clone(c.params) }

// Eval runs the check. A panicking predicate counts as a failure.
func (c Check) Eval(value any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return c.pred.Fn(value, c.params)
}

func compileCheck(reg *Registry, spec CheckSpec) (Check, error) {
	pred, ok := reg.Lookup(spec.Name)
	if !ok {
		return Check{}, fmt.Errorf("unknown predicate %q", spec.Name)
	}
	params := maps.Clone(spec.Params)
	if pred.Compile != nil {
		var err error
		if params, err = pred.Compile(params); err != nil {
			return Check{}, fmt.Errorf("predicate %q: %w", spec.Name, err)
		}
	}
	return Check{pred: pred, params: params}, nil
}
