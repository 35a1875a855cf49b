/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import "maps"

// Engine validates documents against a compiled Schema Tree, default
// document and cross-field rules. It is immutable and safe for concurrent use.
type Engine struct {
	root     *Node
	defaults map[string]any
	rules    []Rule
}

type engineConfig struct {
	registry *Registry
	defaults map[string]any
	rules    []Rule
}

// Option configures NewEngine.
type Option func(*engineConfig)

// WithRegistry sets the predicate registry used to compile the tree.
// Defaults to DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *engineConfig) {
		c.registry = r
	}
}

// WithDefaults sets the default document merged into every input. The
// document is copied; later changes by the caller have no effect.
func WithDefaults(doc map[string]any) Option {
	return func(c *engineConfig) {
		c.defaults = doc
	}
}

// WithRules appends cross-field rules, evaluated in the order given.
func WithRules(rules ...Rule) Option {
	return func(c *engineConfig) {
		c.rules = append(c.rules, rules...)
	}
}

// NewEngine compiles root and returns an Engine. Construction faults in the
// tree or the rules are returned together.
func NewEngine(root Builder, opts ...Option) (*Engine, error) {
	cfg := &engineConfig{registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(cfg)
	}

	node, err := Build(root, cfg.registry)
	if err != nil {
		return nil, err
	}
	if node.kind != NodeObject {
		return nil, constructionFault("invalid schema", errRootNotObject)
	}

	rules, err := compileRules(cfg.rules)
	if err != nil {
		return nil, err
	}

	var defaults map[string]any
	if cfg.defaults != nil {
		defaults = Merge(nil, cfg.defaults)
	}

	return &Engine{root: node, defaults: defaults, rules: rules}, nil
}

// Root returns the compiled tree.
func (e *Engine) Root() *Node { return e.root }

// Defaults returns a copy of the default document.
func (e *Engine) Defaults() map[string]any {
	return Merge(nil, e.defaults)
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Validate merges the defaults into raw, runs the per-field pass and then
// every cross-field rule. It never panics and never returns nil. A nil raw is
// treated as an empty document.
func (e *Engine) Validate(raw map[string]any) *Result {
	doc := Merge(raw, e.defaults)

	var out []Violation
	walk(e.root, doc, true, nil, &out)

	for _, r := range e.rules {
		if v, ok := evalRule(r, doc); !ok {
			out = append(out, v)
		}
	}

	if len(out) > 0 {
		return &Result{Violations: out}
	}
	return &Result{Document: doc}
}

func walk(n *Node, value any, present bool, path Path, out *[]Violation) {
	if !present {
		switch {
		case n.kind == NodeObject && n.required && n.requiredBelow:
			// Descend so that nested required fields report their own paths.
			value = map[string]any{}
		case n.required:
			*out = append(*out, Violation{Path: path, Kind: KindMissingRequiredField, Key: KeyRequired})
			return
		default:
			return
		}
	}
	// A key given as an explicit null is present: leaves run their checks
	// against nil and containers fall through to a type mismatch below.

	switch n.kind {
	case NodeLeaf:
		for _, c := range n.checks {
			if !c.Eval(value) {
				*out = append(*out, violation(c, path, value))
				return
			}
		}

	case NodeObject:
		m, ok := asMap(value)
		if !ok {
			*out = append(*out, Violation{Path: path, Kind: KindTypeMismatch, Key: KeyHash, Value: value})
			return
		}
		for _, k := range n.keys {
			child, ok := m[k]
			walk(n.children[k], child, ok, path.Child(k), out)
		}

	case NodeCollection:
		list, ok := asList(value)
		if !ok {
			*out = append(*out, Violation{Path: path, Kind: KindTypeMismatch, Key: KeyArray, Value: value})
			return
		}
		for _, c := range n.checks {
			if c.Eval(list) {
				continue
			}
			*out = append(*out, violation(c, path, list))
			if c.Halts() {
				return
			}
			break
		}
		for i, item := range list {
			walk(n.item, item, true, path.At(i), out)
		}
	}
}

func violation(c Check, path Path, value any) Violation {
	return Violation{
		Path:   path,
		Kind:   c.Kind(),
		Key:    c.Key(),
		Params: maps.Clone(c.params),
		Value:  value,
	}
}
