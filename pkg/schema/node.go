/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"errors"
	"slices"

	cnserrors "github.com/NVIDIA/cluster-definition/pkg/errors"
)

// NodeKind is the shape of a Node.
type NodeKind int

const (
	// NodeLeaf is a scalar value checked by predicates.
	NodeLeaf NodeKind = iota
	// NodeObject is a map with declared children.
	NodeObject
	// NodeCollection is a homogeneous sequence.
	NodeCollection
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case NodeLeaf:
		return "leaf"
	case NodeObject:
		return "object"
	case NodeCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Node is a compiled, immutable Schema Tree node.
type Node struct {
	kind     NodeKind
	required bool

	// checks are leaf predicates or collection-level predicates.
	checks []Check

	// keys keeps declaration order of children.
	keys     []string
	children map[string]*Node

	item *Node

	// requiredBelow is set on objects with at least one required child.
	requiredBelow bool
}

// Kind returns the node shape.
func (n *Node) Kind() NodeKind { return n.kind }

// Required reports whether the value must be present.
func (n *Node) Required() bool { return n.required }

// Checks returns the node's predicates in evaluation order.
func (n *Node) Checks() []Check { return slices.Clone(n.checks) }

// Keys returns declared child keys of an object node in declaration order.
func (n *Node) Keys() []string { return slices.Clone(n.keys) }

// Child returns the declared child for key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.children[key]
	return c, ok
}

// Item returns the item schema of a collection node.
func (n *Node) Item() *Node { return n.item }

func constructionFault(msg string, cause error) error {
	return cnserrors.Wrap(cnserrors.ErrCodeSchemaConstruction, msg, cause)
}

// IsConstructionFault reports whether err came from building a schema,
// registry, rule set or message table.
func IsConstructionFault(err error) bool {
	return cnserrors.IsCode(err, cnserrors.ErrCodeSchemaConstruction)
}

var errRootNotObject = errors.New("root must be an object")
