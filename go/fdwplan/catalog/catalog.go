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

// Package catalog defines the Oracle interface: the read-only metadata
// surface the safety walker, deparser, and statement builders consume
// instead of touching a live catalog directly. Keeping catalog access
// behind an interface is what lets the walker and deparser be exercised
// with an in-memory fake in tests, without a running server.
//
// Grounded on postgres_fdw's use of syscache lookups (get_namespace_name,
// get_relid_attribute_name, lookup_type_cache, GetForeignTable,
// GetForeignColumnOptions) in the retrieved postgres_fdw.c/deparse.c
// sources: every function here mirrors one such call, but returns a Go
// error instead of raising a server-side elog(ERROR) directly. Callers map
// a non-nil error to the fatal catalog-lookup-failure path.
package catalog

import (
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// OperatorKind describes where an operator's name sits relative to its
// operands, mirroring pg_operator.oprkind.
type OperatorKind byte

const (
	OperatorInfix   OperatorKind = 'b' // left OP right
	OperatorPrefix  OperatorKind = 'l' // OP right
	OperatorPostfix OperatorKind = 'r' // left OP
)

// OperatorInfo is the subset of pg_operator the deparser needs to render an
// operator application: its bare name, the namespace it lives in (to decide
// whether OPERATOR(schema.name) qualification is required), and its
// positional kind.
type OperatorInfo struct {
	Name         string
	NamespaceOid ast.Oid
	Kind         OperatorKind
}

// FunctionInfo is the subset of pg_proc the deparser needs: its bare name
// and namespace.
type FunctionInfo struct {
	Name         string
	NamespaceOid ast.Oid
}

// FDWOption is a single name/value pair from a foreign table, column, or
// server's OPTIONS clause.
type FDWOption struct {
	Name  string
	Value string
}

// exprIsLengthCoercion mirrors the core's exprIsLengthCoercion helper: a
// length-coercion cast (varchar(n), numeric(p,s), ...) is a cast FuncExpr
// whose second argument is a non-null typmod Const. This is purely
// structural and needs no catalog access, which is why both Oracle
// implementations delegate to the same function rather than each
// reimplementing it.
func exprIsLengthCoercion(expr ast.Node) (int32, bool) {
	fn, ok := expr.(*ast.FuncExpr)
	if !ok {
		return 0, false
	}
	if fn.Funcformat != ast.COERCE_EXPLICIT_CAST && fn.Funcformat != ast.COERCE_IMPLICIT_CAST {
		return 0, false
	}
	if len(fn.Args) < 2 {
		return 0, false
	}
	typmodConst, ok := fn.Args[1].(*ast.Const)
	if !ok || typmodConst.Constisnull {
		return 0, false
	}
	return int32(typmodConst.Constvalue), true
}

// Oracle is the catalog metadata surface consumed by the safety walker,
// deparser, and statement builders. All lookups are read-only from the
// core's point of view; an Oracle implementation may cache internally.
//
// Every method that models a catalog cache lookup returns an error instead
// of panicking. Callers treat a non-nil error as fatal (mterrors.CodeCatalogLookupFailed),
// per the error-handling design: the walker never partially trusts a failed
// lookup by silently rejecting the clause, since a lookup failure indicates
// catalog inconsistency, not an ordinary "not safe to push down" outcome.
type Oracle interface {
	// IsBuiltin reports whether oid was hand-assigned by catalog bootstrap,
	// i.e. oid is below the oracle's configured built-in cutoff (by default
	// FirstBootstrapObjectId). It never fails.
	IsBuiltin(oid ast.Oid) bool

	// NamespaceName returns the schema name for a pg_namespace OID.
	NamespaceName(oid ast.Oid) (string, error)

	// RelationNamespace returns the namespace OID a relation belongs to.
	RelationNamespace(relOid ast.Oid) (ast.Oid, error)

	// RelationName returns a relation's local (non-FDW-overridden) name.
	RelationName(relOid ast.Oid) (string, error)

	// AttributeName returns a column's local (non-FDW-overridden) name.
	AttributeName(relOid ast.Oid, attnum ast.AttrNumber) (string, error)

	// AttributeIsDropped reports whether a column has been dropped from the
	// relation. Dropped columns are never referenced or emitted.
	AttributeIsDropped(relOid ast.Oid, attnum ast.AttrNumber) bool

	// ForeignTableOptions returns the OPTIONS pairs attached to a foreign
	// table (e.g. schema_name, table_name).
	ForeignTableOptions(relOid ast.Oid) ([]FDWOption, error)

	// ForeignColumnOptions returns the OPTIONS pairs attached to one column
	// of a foreign table (e.g. column_name).
	ForeignColumnOptions(relOid ast.Oid, attnum ast.AttrNumber) ([]FDWOption, error)

	// LookupOperator resolves an operator OID to its name, namespace, and
	// positional kind.
	LookupOperator(oid ast.Oid) (OperatorInfo, error)

	// LookupFunction resolves a function OID to its name and namespace.
	LookupFunction(oid ast.Oid) (FunctionInfo, error)

	// ContainsMutableFunction reports whether any function reachable from
	// expr (by OID) is marked VOLATILE or STABLE, i.e. not IMMUTABLE. This
	// backstops the walker's per-node built-in checks: a built-in function
	// can still be mutable (e.g. now()).
	ContainsMutableFunction(expr ast.Node) bool

	// ExprType returns the OID of a node's static result type. Used by the
	// deparser to decide which cast suffix, if any, a Const or Param needs.
	ExprType(expr ast.Node) (ast.Oid, error)

	// ExprIsLengthCoercion reports whether expr is a function call in cast
	// form (explicit or implicit) implementing a length coercion (e.g.
	// varchar(10), numeric(8,2)), returning the target typmod when it is. This preserves length-typmod
	// behavior for FuncExpr nodes in COERCE_EXPLICIT_CAST form.
	ExprIsLengthCoercion(expr ast.Node) (typmod int32, ok bool)

	// FormatTypeWithTypmod renders a type name including any typmod
	// decoration (e.g. "character varying(10)", "numeric(8,2)").
	FormatTypeWithTypmod(oid ast.Oid, typmod int32) (string, error)

	// QuoteIdentifier quotes name per the remote dialect's identifier rules.
	QuoteIdentifier(name string) string

	// TypeOutput renders a non-null Datum through the type's output
	// function, exactly as the type would print it locally. It is never
	// called for a null constant; null constants are rendered by the
	// deparser without calling TypeOutput at all.
	TypeOutput(oid ast.Oid, value ast.Datum) (string, error)

	// WithPortableOutput runs fn with the session's date/interval output
	// styles switched to their unambiguous, locale-independent forms (ISO
	// dates, SQL-standard intervals), restoring the prior styles on every
	// exit path from fn including a panic. The statement builders wrap
	// constant deparsing in this before appending a WHERE clause, since a
	// remote server may not share the local session's DateStyle.
	WithPortableOutput(fn func() error) error
}
