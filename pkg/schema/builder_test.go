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

func TestBuild_Shapes(t *testing.T) {
	root := MustBuild(Object(
		Required("hosts", Collection(
			Object(Required("address", Leaf(Pred("str")))),
			Pred("min_size", Params{"num": 1}),
		)),
		Optional("name", Leaf(Pred("str"))),
	), nil)

	assert.Equal(t, NodeObject, root.Kind())
	assert.True(t, root.Required())
	assert.Equal(t, []string{"hosts", "name"}, root.Keys())

	hosts, ok := root.Child("hosts")
	require.True(t, ok)
	assert.Equal(t, NodeCollection, hosts.Kind())
	assert.True(t, hosts.Required())
	require.Len(t, hosts.Checks(), 1)
	assert.Equal(t, "min_size", hosts.Checks()[0].Name())

	item := hosts.Item()
	require.NotNil(t, item)
	assert.Equal(t, NodeObject, item.Kind())

	name, _ := root.Child("name")
	assert.False(t, name.Required())
	assert.Equal(t, "leaf", name.Kind().String())
}

func TestBuild_ReportsAllFaults(t *testing.T) {
	_, err := Build(Object(
		Required("role", Leaf(Pred("included_in", Params{"list": []string{}}))),
		Optional("port", Leaf(Pred("between"))),
		Optional("port", Leaf(Pred("int"))),
		Optional("list", Collection(nil)),
		Optional("", Leaf()),
		Optional("nothing", nil),
	), nil)

	require.Error(t, err)
	assert.True(t, IsConstructionFault(err))
	msg := err.Error()
	assert.Contains(t, msg, "role")
	assert.Contains(t, msg, "allowed set cannot be empty")
	assert.Contains(t, msg, `unknown predicate "between"`)
	assert.Contains(t, msg, "port: declared twice")
	assert.Contains(t, msg, "collection has no item schema")
	assert.Contains(t, msg, "empty field key")
	assert.Contains(t, msg, "nothing: no schema")
}

func TestBuild_NilRoot(t *testing.T) {
	_, err := Build(nil, nil)
	assert.True(t, IsConstructionFault(err))
}

func TestNewEngine_RootMustBeObject(t *testing.T) {
	_, err := NewEngine(Leaf(Pred("str")))
	assert.True(t, IsConstructionFault(err))
}

func TestPred_MergesParams(t *testing.T) {
	spec := Pred("gt", Params{"num": 1}, Params{"num": 2, "extra": true})
	assert.Equal(t, Params{"num": 2, "extra": true}, spec.Params)
	assert.Nil(t, Pred("str").Params)
}
