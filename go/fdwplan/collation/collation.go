// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collation implements the three-valued collation-safety lattice
// the safety walker threads through a post-order expression walk. The
// walker keeps an inner State by value and merges on return, following the
// original C code's local FDWCollateState struct but as an explicit,
// side-effect-free variant instead of an in/out pointer.
package collation

import "github.com/multigres/pgfdwplan/go/parser/ast"

// Tag is the three-valued collation-safety state: None < Safe < Unsafe.
type Tag int

const (
	// None means the expression's type is non-collatable (its collation is
	// invalid). This is compatible with any other tag.
	None Tag = iota
	// Safe means every collation contributing to the subtree derives
	// solely from a foreign-table column.
	Safe
	// Unsafe means some collation in the subtree was introduced from a
	// source other than a foreign-table column (a local variable, a
	// COLLATE clause, a non-default constant collation, ...).
	Unsafe
)

func (t Tag) String() string {
	switch t {
	case None:
		return "None"
	case Safe:
		return "Safe"
	case Unsafe:
		return "Unsafe"
	default:
		return "Invalid"
	}
}

// State is a node's collation provenance: its safety tag and, when the tag
// is Safe, the specific collation OID all contributing Vars agreed on.
type State struct {
	Tag       Tag
	Collation ast.Oid
}

// Init is the walker's starting inner state before visiting any children:
// None with no collation.
var Init = State{Tag: None, Collation: ast.InvalidOid}

// Merge folds a child's returned state into the parent's so-far-accumulated
// state, per the lattice merge rules: a strictly higher child tag
// overwrites the parent; for an equal Safe tag with a differing collation,
// the default collation yields to the other one, and two differing
// non-default collations promote the parent to Unsafe; None is a no-op;
// Unsafe is absorbing.
func Merge(parentSoFar, child State) State {
	switch {
	case child.Tag > parentSoFar.Tag:
		return child
	case child.Tag < parentSoFar.Tag:
		return parentSoFar
	default:
		switch child.Tag {
		case None:
			return parentSoFar
		case Safe:
			if child.Collation == parentSoFar.Collation {
				return parentSoFar
			}
			if child.Collation == ast.DefaultCollationOid {
				return parentSoFar
			}
			if parentSoFar.Collation == ast.DefaultCollationOid {
				return State{Tag: Safe, Collation: child.Collation}
			}
			return State{Tag: Unsafe, Collation: ast.InvalidOid}
		default: // Unsafe
			return parentSoFar
		}
	}
}

// FinalTag computes a parent node's own tag from its declared result
// collation and the merged tag/collation of its children, per the rule in
// the lattice specification: None if the declared collation is invalid,
// Safe if the inner tag is Safe and matches the declared collation, Unsafe
// otherwise.
func FinalTag(declaredCollation ast.Oid, inner State) State {
	if declaredCollation == ast.InvalidOid {
		return State{Tag: None, Collation: ast.InvalidOid}
	}
	if inner.Tag == Safe && inner.Collation == declaredCollation {
		return State{Tag: Safe, Collation: declaredCollation}
	}
	return State{Tag: Unsafe, Collation: ast.InvalidOid}
}
