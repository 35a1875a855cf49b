/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"fmt"
)

// Value is an input extracted for a cross-field rule.
type Value struct {
	Raw     any
	Present bool
}

// Int returns the value as an integer when it is present and integral.
func (v Value) Int() (int64, bool) {
	if !v.Present {
		return 0, false
	}
	return toInt(v.Raw)
}

// Len returns the length of a present sequence, and 0 otherwise.
func (v Value) Len() int {
	if !v.Present {
		return 0
	}
	l, _ := asList(v.Raw)
	return len(l)
}

// RuleFunc checks the values extracted for a rule, in Inputs order.
type RuleFunc func(values []Value) bool

// Rule is a named check spanning several paths.
type Rule struct {
	Name   string
	Inputs []Path
	Check  RuleFunc

	// Key selects the failure message. Defaults to Name.
	Key MessageKey
}

// NewRule declares a rule over the given input paths. It panics on a
// malformed path, so it suits package-level declarations.
func NewRule(name string, check RuleFunc, inputs ...string) Rule {
	r := Rule{Name: name, Check: check, Key: MessageKey(name)}
	for _, in := range inputs {
		r.Inputs = append(r.Inputs, MustParsePath(in))
	}
	return r
}

func compileRules(rules []Rule) ([]Rule, error) {
	var errs []error
	seen := make(map[string]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		switch {
		case r.Name == "":
			errs = append(errs, errors.New("rule name cannot be empty"))
			continue
		case r.Check == nil:
			errs = append(errs, fmt.Errorf("rule %q has no check", r.Name))
			continue
		}
		if _, dup := seen[r.Name]; dup {
			errs = append(errs, fmt.Errorf("rule %q declared twice", r.Name))
			continue
		}
		seen[r.Name] = struct{}{}
		if r.Key == "" {
			r.Key = MessageKey(r.Name)
		}
		r.Inputs = append([]Path(nil), r.Inputs...)
		out = append(out, r)
	}
	if len(errs) > 0 {
		return nil, constructionFault("invalid cross-field rules", errors.Join(errs...))
	}
	return out, nil
}

// evalRule runs r against doc. A panicking check counts as a failure.
func evalRule(r Rule, doc map[string]any) (v Violation, ok bool) {
	values := make([]Value, len(r.Inputs))
	inputs := make([]string, len(r.Inputs))
	for i, p := range r.Inputs {
		raw, present := Lookup(doc, p)
		values[i] = Value{Raw: raw, Present: present && raw != nil}
		inputs[i] = p.String()
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
		if !ok {
			v = Violation{
				Rule:   r.Name,
				Kind:   KindCrossFieldViolation,
				Key:    r.Key,
				Params: Params{"inputs": inputs},
			}
		}
	}()
	return Violation{}, r.Check(values)
}
