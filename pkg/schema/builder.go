/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"fmt"
	"maps"
)

// Builder describes a Schema Tree node before compilation.
type Builder interface {
	build(reg *Registry, path Path, required bool, errs *[]error) *Node
}

// CheckSpec names a predicate and its params.
type CheckSpec struct {
	Name   string
	Params Params
}

// Pred returns a CheckSpec for the named predicate. Multiple params maps are
// merged left to right.
func Pred(name string, params ...Params) CheckSpec {
	spec := CheckSpec{Name: name}
	for _, p := range params {
		if spec.Params == nil {
			spec.Params = make(Params, len(p))
		}
		maps.Copy(spec.Params, p)
	}
	return spec
}

// FieldSpec declares an object child.
type FieldSpec struct {
	Key      string
	Required bool
	Schema   Builder
}

// Required declares a child that must be present.
func Required(key string, b Builder) FieldSpec {
	return FieldSpec{Key: key, Required: true, Schema: b}
}

// Optional declares a child that may be absent.
func Optional(key string, b Builder) FieldSpec {
	return FieldSpec{Key: key, Schema: b}
}

// LeafBuilder builds a leaf node.
type LeafBuilder struct {
	checks []CheckSpec
}

// Leaf declares a scalar checked by the given predicates in order.
func Leaf(checks ...CheckSpec) *LeafBuilder {
	return &LeafBuilder{checks: checks}
}

func (b *LeafBuilder) build(reg *Registry, path Path, required bool, errs *[]error) *Node {
	return &Node{
		kind:     NodeLeaf,
		required: required,
		checks:   compileChecks(reg, path, b.checks, errs),
	}
}

// ObjectBuilder builds an object node.
type ObjectBuilder struct {
	fields []FieldSpec
}

// Object declares a map with the given children.
func Object(fields ...FieldSpec) *ObjectBuilder {
	return &ObjectBuilder{fields: fields}
}

func (b *ObjectBuilder) build(reg *Registry, path Path, required bool, errs *[]error) *Node {
	n := &Node{
		kind:     NodeObject,
		required: required,
		keys:     make([]string, 0, len(b.fields)),
		children: make(map[string]*Node, len(b.fields)),
	}
	for _, f := range b.fields {
		childPath := path.Child(f.Key)
		switch {
		case f.Key == "":
			*errs = append(*errs, fmt.Errorf("%s: empty field key", describe(path)))
			continue
		case f.Schema == nil:
			*errs = append(*errs, fmt.Errorf("%s: no schema", childPath))
			continue
		}
		if _, dup := n.children[f.Key]; dup {
			*errs = append(*errs, fmt.Errorf("%s: declared twice", childPath))
			continue
		}
		child := f.Schema.build(reg, childPath, f.Required, errs)
		n.keys = append(n.keys, f.Key)
		n.children[f.Key] = child
		if child.required {
			n.requiredBelow = true
		}
	}
	return n
}

// CollectionBuilder builds a collection node.
type CollectionBuilder struct {
	item   Builder
	checks []CheckSpec
}

// Collection declares a sequence whose items match item. checks run against
// the whole sequence before its items are validated.
func Collection(item Builder, checks ...CheckSpec) *CollectionBuilder {
	return &CollectionBuilder{item: item, checks: checks}
}

func (b *CollectionBuilder) build(reg *Registry, path Path, required bool, errs *[]error) *Node {
	n := &Node{
		kind:     NodeCollection,
		required: required,
		checks:   compileChecks(reg, path, b.checks, errs),
	}
	if b.item == nil {
		*errs = append(*errs, fmt.Errorf("%s: collection has no item schema", describe(path)))
		return n
	}
	n.item = b.item.build(reg, path.At(0), true, errs)
	return n
}

func compileChecks(reg *Registry, path Path, specs []CheckSpec, errs *[]error) []Check {
	checks := make([]Check, 0, len(specs))
	for _, spec := range specs {
		c, err := compileCheck(reg, spec)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", describe(path), err))
			continue
		}
		checks = append(checks, c)
	}
	return checks
}

func describe(p Path) string {
	if len(p) == 0 {
		return "<root>"
	}
	return p.String()
}

// Build compiles b against reg into an immutable tree. The root is required.
// All problems are reported together as a construction fault.
func Build(b Builder, reg *Registry) (*Node, error) {
	if b == nil {
		return nil, constructionFault("invalid schema", errors.New("root builder is nil"))
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	var errs []error
	root := b.build(reg, nil, true, &errs)
	if len(errs) > 0 {
		return nil, constructionFault("invalid schema", errors.Join(errs...))
	}
	return root, nil
}

// MustBuild is Build that panics on a construction fault.
func MustBuild(b Builder, reg *Registry) *Node {
	n, err := Build(b, reg)
	if err != nil {
		panic(err)
	}
	return n
}
