/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package schema implements a declarative, recursive validator for nested
// configuration documents.
//
// # Overview
//
// A document is a map[string]any whose values are scalars, sequences or nested
// maps (what yaml.v3 and encoding/json produce when decoding into any). The
// engine checks it against an immutable Schema Tree and returns every problem
// it finds, each attributed to a single path or cross-field rule, instead of
// stopping at the first one.
//
// # Schema Tree
//
// A tree is described with builders and compiled once against a predicate
// Registry:
//
//	root := schema.Object(
//	    schema.Required("hosts", schema.Collection(
//	        schema.Object(
//	            schema.Required("address", schema.Leaf(schema.Pred("filled"), schema.Pred("str"))),
//	            schema.Optional("ssh_port", schema.Leaf(
//	                schema.Pred("int"),
//	                schema.Pred("gt", schema.Params{"num": 0}),
//	            )),
//	        ),
//	        schema.Pred("min_size", schema.Params{"num": 1}),
//	    )),
//	)
//
//	engine, err := schema.NewEngine(root,
//	    schema.WithDefaults(defaults),
//	    schema.WithRules(rules...),
//	)
//
// Compilation resolves predicate names and validates their parameters; any
// problem is a construction fault returned from NewEngine (or Build) before a
// single document is accepted.
//
// # Evaluation
//
// Validate deep-merges the defaults into the input, walks the tree depth-first
// and then runs every cross-field rule in declaration order. Leaf checks stop
// at the first failing predicate. Collection checks run before the items; a
// failing halting check (uniqueness) suppresses item validation for that
// collection. Keys not declared in the tree are ignored.
//
// # Messages
//
// Violations carry a MessageKey rather than text. A Formatter turns them into
// strings using per-locale MessageTables, falling back to "<path> is invalid"
// for keys a table does not know.
//
// # Concurrency
//
// Engines, nodes, registries and formatters are immutable after construction
// and safe for concurrent use. Validate performs no I/O.
package schema
