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

// Package plancontext holds the planner-side data the safety walker,
// classifier, deparser, and statement builders read but never mutate: range
// table entries, foreign relation descriptors, column descriptors, and
// restriction lists. It is the second of the two consumed interfaces the
// core sees the outside planner through, the catalog oracle being the
// first.
package plancontext

import "github.com/multigres/pgfdwplan/go/parser/ast"

// RangeTableEntry describes one entry of the query's range table: the base
// relation a Var's Varno indexes into. The walker rejects any Var whose
// Varno/Varlevelsup does not identify the relation actually being planned.
type RangeTableEntry struct {
	// RelOid is the local OID of the relation this range table entry names.
	RelOid ast.Oid
}

// ColumnDescriptor is one column of a foreign relation as seen by the
// planner: its local attribute number and name, whether it has been
// dropped, and the remote name override taken from its column_name FDW
// option, if any.
type ColumnDescriptor struct {
	AttNum      ast.AttrNumber
	LocalName   string
	Dropped     bool
	RemoteName  string // resolved column_name option, or LocalName if unset
	HasOverride bool
}

// ForeignRelation describes the foreign table being planned: its local and
// remote identity, and its columns in attribute-number order.
type ForeignRelation struct {
	// RelOid is the local OID of the foreign table.
	RelOid ast.Oid

	// Varno is the range-table index Var nodes referencing this relation's
	// columns must carry to be admissible.
	Varno ast.Index

	// LocalSchema/LocalTable are the relation's local namespace and name.
	LocalSchema string
	LocalTable  string

	// RemoteSchema/RemoteTable are the schema_name/table_name FDW option
	// overrides, defaulting to LocalSchema/LocalTable when unset.
	RemoteSchema string
	RemoteTable  string

	// Columns are ordered by AttNum ascending, including dropped ones so
	// positional layout can be reconstructed.
	Columns []ColumnDescriptor

	// UseRemoteEstimate mirrors the server/table's use_remote_estimate FDW
	// option. Consumed by the cost model, not by this core, but carried
	// here since it is read off the same options list.
	UseRemoteEstimate bool
}

// QualifiedRemoteName returns schema.table for the remote relation, each
// part double-quoted only when it is not a plain lower-case identifier.
func (r *ForeignRelation) QualifiedRemoteName() string {
	return ast.FormatQualifiedName(r.RemoteSchema, r.RemoteTable)
}

// ColumnByAttNum returns the column descriptor for attnum, if present.
func (r *ForeignRelation) ColumnByAttNum(attnum ast.AttrNumber) (ColumnDescriptor, bool) {
	for _, c := range r.Columns {
		if c.AttNum == attnum {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}

// MaxAttNum returns the highest attribute number among the relation's
// columns, or 0 if it has none. Used to size positional-NULL output.
func (r *ForeignRelation) MaxAttNum() ast.AttrNumber {
	var max ast.AttrNumber
	for _, c := range r.Columns {
		if c.AttNum > max {
			max = c.AttNum
		}
	}
	return max
}

// Restriction wraps one restriction-clause root expression from a
// relation's WHERE list, as handed to the classifier.
type Restriction struct {
	Expr ast.Node
}

// TargetList is the set of attribute numbers a scan's projection actually
// references, independent of any restriction. A whole-row reference is
// represented by WholeRow=true, which forces every non-dropped column to be
// treated as referenced.
type TargetList struct {
	Attrs    map[ast.AttrNumber]bool
	WholeRow bool
}

// References reports whether attnum is referenced by the target list.
func (t *TargetList) References(attnum ast.AttrNumber) bool {
	if t == nil {
		return false
	}
	if t.WholeRow {
		return true
	}
	return t.Attrs[attnum]
}
