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

// Package testfixture builds the ft1/S1.T1 relation and catalog fake shared
// by the walker, classify, deparse, and statement-builder test suites, so
// every package exercises the same scenario data instead of redeclaring it.
package testfixture

import (
	"fmt"
	"sync"

	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// UserEnumOid is a non-built-in type OID standing in for a user-defined
// enum, used to exercise the built-in-closure rejection path.
const UserEnumOid ast.Oid = 20000

const (
	OpEq  ast.Oid = 96  // built-in "="
	OpGe  ast.Oid = 525 // built-in ">="
	OpAdd ast.Oid = 551 // built-in "+"
)

const (
	FuncNumericEq ast.Oid = 65
	FuncBpcharGe  ast.Oid = 1060
	FuncInt4Add   ast.Oid = 177
)

// Ft1Relation returns the ft1 foreign relation from the concrete scenarios:
// c1 (remote name "C 1") int, c2 int, c3 text, c4 timestamptz, c5 timestamp,
// c6 varchar, c7 char, c8 user_enum.
func Ft1Relation() *plancontext.ForeignRelation {
	return &plancontext.ForeignRelation{
		RelOid:       50100,
		Varno:        1,
		LocalSchema:  "public",
		LocalTable:   "ft1",
		RemoteSchema: "S 1",
		RemoteTable:  "T 1",
		Columns: []plancontext.ColumnDescriptor{
			{AttNum: 1, LocalName: "c1", RemoteName: "C 1", HasOverride: true},
			{AttNum: 2, LocalName: "c2"},
			{AttNum: 3, LocalName: "c3"},
			{AttNum: 4, LocalName: "c4"},
			{AttNum: 5, LocalName: "c5"},
			{AttNum: 6, LocalName: "c6"},
			{AttNum: 7, LocalName: "c7"},
			{AttNum: 8, LocalName: "c8"},
		},
	}
}

// Ft1ColumnType maps ft1's attribute numbers to their type OIDs.
var Ft1ColumnType = map[ast.AttrNumber]ast.Oid{
	1: ast.INT4OID,
	2: ast.INT4OID,
	3: ast.TEXTOID,
	4: ast.TIMESTAMPTZOID,
	5: ast.TIMESTAMPOID,
	6: ast.VARCHAROID,
	7: ast.BPCHAROID,
	8: UserEnumOid,
}

// Ft3Relation returns the ft3/loct3 relation from scenario 5: f1, f2, no
// column_name overrides.
func Ft3Relation() *plancontext.ForeignRelation {
	return &plancontext.ForeignRelation{
		RelOid:       50300,
		Varno:        1,
		LocalSchema:  "public",
		LocalTable:   "ft3",
		RemoteSchema: "public",
		RemoteTable:  "loct3",
		Columns: []plancontext.ColumnDescriptor{
			{AttNum: 1, LocalName: "f1"},
			{AttNum: 2, LocalName: "f2"},
		},
	}
}

// NewOracle returns a FakeOracle preloaded with pg_catalog, the built-in
// operators/functions the scenarios exercise, and simple type formatting.
func NewOracle() *catalog.FakeOracle {
	o := catalog.NewFakeOracle()

	o.Namespaces[11] = "pg_catalog" // pg_catalog's own namespace OID, arbitrary but fixed
	o.Namespaces[2200] = "public"

	o.Types[ast.INT4OID] = catalog.TypeInfo{Name: "integer"}
	o.Types[ast.TEXTOID] = catalog.TypeInfo{Name: "text"}
	o.Types[ast.TIMESTAMPTZOID] = catalog.TypeInfo{Name: "timestamp with time zone"}
	o.Types[ast.TIMESTAMPOID] = catalog.TypeInfo{Name: "timestamp without time zone"}
	o.Types[ast.VARCHAROID] = catalog.TypeInfo{Name: "character varying"}
	o.Types[ast.BPCHAROID] = catalog.TypeInfo{Name: "bpchar"}
	o.Types[ast.BOOLOID] = catalog.TypeInfo{Name: "boolean"}
	o.Types[UserEnumOid] = catalog.TypeInfo{Name: "user_enum"}
	o.Types[ast.INT4ARRAYOID] = catalog.TypeInfo{Name: "integer[]"}

	o.Operators[OpEq] = catalog.OperatorInfo{Name: "=", NamespaceOid: 11, Kind: catalog.OperatorInfix}
	o.Operators[OpGe] = catalog.OperatorInfo{Name: ">=", NamespaceOid: 11, Kind: catalog.OperatorInfix}
	o.Operators[OpAdd] = catalog.OperatorInfo{Name: "+", NamespaceOid: 11, Kind: catalog.OperatorInfix}

	o.Functions[FuncNumericEq] = catalog.FunctionInfo{Name: "numeric_eq", NamespaceOid: 11}
	o.Functions[FuncBpcharGe] = catalog.FunctionInfo{Name: "bpcharge", NamespaceOid: 11}
	o.Functions[FuncInt4Add] = catalog.FunctionInfo{Name: "int4pl", NamespaceOid: 11}

	o.TypeOutputs[ast.INT4OID] = func(d ast.Datum) string { return fmt.Sprintf("%d", int64(d)) }
	o.TypeOutputs[ast.TEXTOID] = func(d ast.Datum) string { return datumString(d) }
	o.TypeOutputs[ast.VARCHAROID] = func(d ast.Datum) string { return datumString(d) }
	o.TypeOutputs[ast.BPCHAROID] = func(d ast.Datum) string { return datumString(d) }
	o.TypeOutputs[ast.BOOLOID] = func(d ast.Datum) string {
		if d != 0 {
			return "t"
		}
		return "f"
	}

	return o
}

// datumString/StringDatum let tests round-trip a Go string through the
// opaque Datum type without needing a real value representation.
var (
	stringPoolMu sync.Mutex
	stringPool   []string
)

// StringDatum interns s and returns a Datum that datumString resolves back
// to s. Good enough for tests where Datum never needs to survive process
// boundaries.
func StringDatum(s string) ast.Datum {
	stringPoolMu.Lock()
	defer stringPoolMu.Unlock()
	stringPool = append(stringPool, s)
	return ast.Datum(len(stringPool))
}

func datumString(d ast.Datum) string {
	stringPoolMu.Lock()
	defer stringPoolMu.Unlock()
	idx := int(d)
	if idx <= 0 || idx > len(stringPool) {
		return ""
	}
	return stringPool[idx-1]
}
