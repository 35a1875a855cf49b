/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replicasRule() Rule {
	return NewRule("dns_replicas", func(v []Value) bool {
		n, ok := v[0].Int()
		if !ok {
			return true
		}
		return n <= int64(v[1].Len())
	}, "network.dns_replicas", "hosts")
}

func TestRules_RunAfterFieldViolations(t *testing.T) {
	e := testEngine(t, WithRules(replicasRule()))

	res := e.Validate(map[string]any{
		"hosts":   []any{map[string]any{"address": "a", "role": "boss"}},
		"network": map[string]any{"dns_replicas": 3},
	})
	require.Len(t, res.Violations, 2)
	assert.Equal(t, KindEnumViolation, res.Violations[0].Kind)

	v := res.Violations[1]
	assert.Equal(t, KindCrossFieldViolation, v.Kind)
	assert.Equal(t, "dns_replicas", v.Rule)
	assert.Equal(t, "dns_replicas", v.Subject())
	assert.Empty(t, v.Path)
	assert.Equal(t, []string{"network.dns_replicas", "hosts"}, v.Params["inputs"])
}

func TestRules_AbsentInputs(t *testing.T) {
	e := testEngine(t, WithRules(replicasRule()))

	res := e.Validate(map[string]any{"hosts": []any{host("a")}})
	assert.True(t, res.Valid(), "rule passes when dns_replicas is absent")

	res = e.Validate(map[string]any{"network": map[string]any{"dns_replicas": 1}})
	require.Len(t, res.Violations, 2, "missing hosts counts as zero hosts")
	assert.Equal(t, "hosts", res.Violations[0].Subject())
	assert.Equal(t, "dns_replicas", res.Violations[1].Subject())
}

func TestRules_DeclarationOrderAndPanics(t *testing.T) {
	e := testEngine(t, WithRules(
		NewRule("second", func([]Value) bool { return false }),
		NewRule("boom", func(v []Value) bool { return v[5].Present }),
		NewRule("ok", func([]Value) bool { return true }),
		NewRule("first", func([]Value) bool { return false }),
	))

	res := e.Validate(map[string]any{"hosts": []any{host("a")}})
	var names []string
	for _, v := range res.Violations {
		names = append(names, v.Rule)
	}
	assert.Equal(t, []string{"second", "boom", "first"}, names)
}

func TestRules_ConstructionFaults(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{"duplicate", []Rule{NewRule("r", func([]Value) bool { return true }), NewRule("r", func([]Value) bool { return true })}},
		{"empty name", []Rule{{Check: func([]Value) bool { return true }}}},
		{"nil check", []Rule{{Name: "r"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(testSchema(), WithRules(tt.rules...))
			assert.True(t, IsConstructionFault(err))
		})
	}
}

func TestNewRule_PanicsOnBadPath(t *testing.T) {
	assert.Panics(t, func() { NewRule("r", func([]Value) bool { return true }, "hosts[") })
}

func TestValue(t *testing.T) {
	n, ok := Value{Raw: 3, Present: true}.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	_, ok = Value{Raw: "3", Present: true}.Int()
	assert.False(t, ok)

	_, ok = Value{Raw: 3}.Int()
	assert.False(t, ok)

	assert.Equal(t, 2, Value{Raw: []any{1, 2}, Present: true}.Len())
	assert.Equal(t, 0, Value{Raw: "ab", Present: true}.Len())
	assert.Equal(t, 0, Value{}.Len())
}
