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

// Package stmt assembles the top-level SQL statements the planner sends to
// the remote server: scan SELECTs, WHERE-clause fragments, and the two
// ANALYZE support queries. Every builder writes into a caller-owned
// sqlwriter.Buffer and never retains it past return.
package stmt

import (
	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/deparse"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// referencedAttrs computes the set of attribute numbers actually needed by
// a scan: those in the target list, plus any Var appearing in a
// local-only restriction (which the executor must filter on after
// fetching rows), plus every column if any of those Vars is a whole-row
// reference.
func referencedAttrs(rel *plancontext.ForeignRelation, targetList *plancontext.TargetList, localConds []ast.Node) map[ast.AttrNumber]bool {
	refs := make(map[ast.AttrNumber]bool, rel.MaxAttNum())
	wholeRow := targetList != nil && targetList.WholeRow

	for _, col := range rel.Columns {
		if targetList.References(col.AttNum) {
			refs[col.AttNum] = true
		}
	}

	for _, expr := range localConds {
		collectVars(expr, rel, func(attnum ast.AttrNumber) {
			if attnum == 0 {
				wholeRow = true
				return
			}
			refs[attnum] = true
		})
	}

	if wholeRow {
		for _, col := range rel.Columns {
			if !col.Dropped {
				refs[col.AttNum] = true
			}
		}
	}

	return refs
}

// collectVars walks expr, invoking visit for every Var belonging to rel.
// Built on ast.FindNodes/ast.WalkNodes rather than its own hand-rolled
// recursion, since the two do the same tree walk.
func collectVars(expr ast.Node, rel *plancontext.ForeignRelation, visit func(ast.AttrNumber)) {
	if expr == nil {
		return
	}
	for _, node := range ast.FindNodes(expr, ast.T_Var) {
		if v := node.(*ast.Var); v.Varno == rel.Varno {
			visit(v.Varattno)
		}
	}
}

// SimpleScanSelect emits `SELECT col1, col2, ... FROM schema.table` for rel,
// projecting every attribute referenced by targetList or by localConds in
// attribute-number order. Non-referenced, non-dropped columns are emitted
// as NULL placeholders to preserve positional layout; dropped columns are
// skipped entirely. If no columns remain, a single NULL is emitted.
func SimpleScanSelect(buf *sqlwriter.Buffer, rel *plancontext.ForeignRelation, targetList *plancontext.TargetList, localConds []ast.Node, oracle catalog.Oracle) error {
	refs := referencedAttrs(rel, targetList, localConds)

	buf.WriteString("SELECT ")
	emitted := 0
	for _, col := range rel.Columns {
		if col.Dropped {
			continue
		}
		if emitted > 0 {
			buf.WriteString(", ")
		}
		if refs[col.AttNum] {
			name := col.LocalName
			if col.HasOverride {
				name = col.RemoteName
			}
			buf.WriteIdentifier(name)
		} else {
			buf.WriteString("NULL")
		}
		emitted++
	}
	if emitted == 0 {
		buf.WriteString("NULL")
	}

	buf.WriteString(" FROM ").WriteString(rel.QualifiedRemoteName())
	return nil
}

// AppendWhereClause appends ` WHERE (e1) AND (e2) AND ...` to buf, or
// ` AND ...` if isFirst is false (a WHERE clause already exists). Constant
// deparsing runs under the oracle's portable output mode so date/interval
// literals render unambiguously for the remote server.
func AppendWhereClause(buf *sqlwriter.Buffer, isFirst bool, exprs []ast.Node, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	if len(exprs) == 0 {
		return nil
	}
	return oracle.WithPortableOutput(func() error {
		for _, expr := range exprs {
			if isFirst {
				buf.WriteString(" WHERE (")
				isFirst = false
			} else {
				buf.WriteString(" AND (")
			}
			if err := deparse.Expr(buf, expr, rel, oracle); err != nil {
				return err
			}
			buf.WriteByte(')')
		}
		return nil
	})
}

// AnalyzeSizeSQL emits the pg_relation_size query ANALYZE uses to estimate
// row count, expressed in units of blockSize bytes.
func AnalyzeSizeSQL(buf *sqlwriter.Buffer, rel *plancontext.ForeignRelation, blockSize int64, oracle catalog.Oracle) {
	buf.WriteString("SELECT pg_catalog.pg_relation_size('")
	buf.WriteIdentifier(rel.RemoteSchema).WriteByte('.')
	buf.WriteIdentifier(rel.RemoteTable)
	buf.WriteString("'::pg_catalog.regclass) / ")
	buf.WriteInt(blockSize)
}

// AnalyzeSampleSQL emits the SELECT ANALYZE uses to sample rows: every
// non-dropped column, by its remote name, with no WHERE clause.
func AnalyzeSampleSQL(buf *sqlwriter.Buffer, rel *plancontext.ForeignRelation) {
	buf.WriteString("SELECT ")
	emitted := 0
	for _, col := range rel.Columns {
		if col.Dropped {
			continue
		}
		if emitted > 0 {
			buf.WriteString(", ")
		}
		name := col.LocalName
		if col.HasOverride {
			name = col.RemoteName
		}
		buf.WriteIdentifier(name)
		emitted++
	}
	if emitted == 0 {
		buf.WriteString("NULL")
	}
	buf.WriteString(" FROM ").WriteString(rel.QualifiedRemoteName())
}
