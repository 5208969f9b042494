// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast provides PostgreSQL AST type coercion and subscripting node
// definitions restricted to the kinds a restriction-clause expression can
// contain.
// Ported from postgres/src/include/nodes/primnodes.h
package ast

import (
	"fmt"
)

// ==============================================================================
// RELABELTYPE - binary-compatible cast
// ==============================================================================

// RelabelType represents a binary-compatible type relabeling, the most
// common coercion mechanism: the representation doesn't change, only the
// type label does.
// Ported from postgres/src/include/nodes/primnodes.h:1181
type RelabelType struct {
	BaseExpr
	Arg           Expression   // Input expression
	Resulttype    Oid          // Output type OID
	Resulttypmod  int32        // Output typmod (usually -1)
	Resultcollid  Oid          // OID of collation, or InvalidOid if none
	Relabelformat CoercionForm // How this node was written: implicit or explicit
}

// NewRelabelType creates a new RelabelType node.
func NewRelabelType(arg Expression, resulttype Oid, resulttypmod int32, relabelformat CoercionForm) *RelabelType {
	return &RelabelType{
		BaseExpr:      BaseExpr{BaseNode: BaseNode{Tag: T_RelabelType}},
		Arg:           arg,
		Resulttype:    resulttype,
		Resulttypmod:  resulttypmod,
		Relabelformat: relabelformat,
	}
}

// NewImplicitRelabelType creates a new RelabelType for implicit casts.
func NewImplicitRelabelType(arg Expression, resulttype Oid) *RelabelType {
	return &RelabelType{
		BaseExpr:      BaseExpr{BaseNode: BaseNode{Tag: T_RelabelType}},
		Arg:           arg,
		Resulttype:    resulttype,
		Resulttypmod:  -1,
		Relabelformat: COERCE_IMPLICIT_CAST,
	}
}

// NewExplicitRelabelType creates a new RelabelType for explicit casts.
func NewExplicitRelabelType(arg Expression, resulttype Oid) *RelabelType {
	return &RelabelType{
		BaseExpr:      BaseExpr{BaseNode: BaseNode{Tag: T_RelabelType}},
		Arg:           arg,
		Resulttype:    resulttype,
		Resulttypmod:  -1,
		Relabelformat: COERCE_EXPLICIT_CAST,
	}
}

func (rt *RelabelType) ExpressionType() string {
	return "RelabelType"
}

func (rt *RelabelType) String() string {
	formatStrs := map[CoercionForm]string{
		COERCE_EXPLICIT_CALL: "CALL", COERCE_EXPLICIT_CAST: "CAST",
		COERCE_IMPLICIT_CAST: "IMPLICIT", COERCE_SQL_SYNTAX: "SQL",
	}
	formatStr := formatStrs[rt.Relabelformat]
	if formatStr == "" {
		formatStr = fmt.Sprintf("FORMAT_%d", int(rt.Relabelformat))
	}
	return fmt.Sprintf("RelabelType(%s as %d, %s)", rt.Arg, rt.Resulttype, formatStr)
}

// ==============================================================================
// SUBSCRIPTINGREF - array subscripting ("ArrayRef")
// ==============================================================================

// SubscriptingRef represents array subscripting operations: `arr[i]` and
// `arr[lo:hi]`. Assignment subscripting (`arr[i] := v`) is modeled by a
// non-nil Refassgnexpr but is never present in an admitted restriction
// clause, which is read-only.
// Ported from postgres/src/include/nodes/primnodes.h:679
type SubscriptingRef struct {
	BaseExpr
	Refcontainertype Oid          // Type OID of container (array)
	Refelemtype      Oid          // The container type's pg_type.typelem
	Refrestype       Oid          // Type OID of the SubscriptingRef's result
	Reftypmod        int32        // Typmod of the result
	Refcollid        Oid          // Collation of result, or InvalidOid if none
	Refupperindexpr  []Expression // Expressions for upper index bounds
	Reflowerindexpr  []Expression // Expressions for lower index bounds, possibly empty
	Refexpr          Expression   // Expression for the container value
	Refassgnexpr     Expression   // Expression for new value in assignment; nil in a restriction
}

// NewSubscriptingRef creates a new SubscriptingRef node.
func NewSubscriptingRef(containertype, elemtype, restype Oid, refexpr Expression, upperindex []Expression) *SubscriptingRef {
	return &SubscriptingRef{
		BaseExpr:         BaseExpr{BaseNode: BaseNode{Tag: T_SubscriptingRef}},
		Refcontainertype: containertype,
		Refelemtype:      elemtype,
		Refrestype:       restype,
		Reftypmod:        -1,
		Refupperindexpr:  upperindex,
		Refexpr:          refexpr,
	}
}

// NewArraySubscript creates a SubscriptingRef for array indexing (arr[index]).
func NewArraySubscript(arraytype, elemtype Oid, arrayexpr, indexexpr Expression) *SubscriptingRef {
	return &SubscriptingRef{
		BaseExpr:         BaseExpr{BaseNode: BaseNode{Tag: T_SubscriptingRef}},
		Refcontainertype: arraytype,
		Refelemtype:      elemtype,
		Refrestype:       elemtype,
		Reftypmod:        -1,
		Refupperindexpr:  []Expression{indexexpr},
		Refexpr:          arrayexpr,
	}
}

// NewArraySlice creates a SubscriptingRef for array slicing (arr[lower:upper]).
func NewArraySlice(arraytype, elemtype Oid, arrayexpr, lowerexpr, upperexpr Expression) *SubscriptingRef {
	return &SubscriptingRef{
		BaseExpr:         BaseExpr{BaseNode: BaseNode{Tag: T_SubscriptingRef}},
		Refcontainertype: arraytype,
		Refelemtype:      elemtype,
		Refrestype:       arraytype,
		Reftypmod:        -1,
		Refupperindexpr:  []Expression{upperexpr},
		Reflowerindexpr:  []Expression{lowerexpr},
		Refexpr:          arrayexpr,
	}
}

func (sr *SubscriptingRef) ExpressionType() string {
	return "SubscriptingRef"
}

func (sr *SubscriptingRef) String() string {
	if sr.Refassgnexpr != nil {
		return fmt.Sprintf("SubscriptingRef(%s[...] = %s)", sr.Refexpr, sr.Refassgnexpr)
	}
	if len(sr.Reflowerindexpr) > 0 {
		return fmt.Sprintf("SubscriptingRef(%s[%d:%d])", sr.Refexpr, len(sr.Reflowerindexpr), len(sr.Refupperindexpr))
	}
	return fmt.Sprintf("SubscriptingRef(%s[%d])", sr.Refexpr, len(sr.Refupperindexpr))
}

// ==============================================================================
// NULLTEST - IS [NOT] NULL
// ==============================================================================

// NullTestType represents the type of NULL test.
// Ported from postgres/src/include/nodes/primnodes.h:1950
type NullTestType int

const (
	IS_NULL     NullTestType = iota // IS NULL
	IS_NOT_NULL                     // IS NOT NULL
)

// NullTest represents IS NULL and IS NOT NULL tests.
// Ported from postgres/src/include/nodes/primnodes.h:1955
type NullTest struct {
	BaseExpr
	Arg          Expression   // Input expression
	Nulltesttype NullTestType // IS NULL or IS NOT NULL
	Argisrow     bool         // True if input is known to be a row value
}

// NewNullTest creates a new NullTest node.
func NewNullTest(arg Expression, nulltesttype NullTestType) *NullTest {
	return &NullTest{
		BaseExpr:     BaseExpr{BaseNode: BaseNode{Tag: T_NullTest}},
		Arg:          arg,
		Nulltesttype: nulltesttype,
	}
}

// NewIsNullTest creates a new IS NULL test.
func NewIsNullTest(arg Expression) *NullTest {
	return &NullTest{
		BaseExpr:     BaseExpr{BaseNode: BaseNode{Tag: T_NullTest}},
		Arg:          arg,
		Nulltesttype: IS_NULL,
	}
}

// NewIsNotNullTest creates a new IS NOT NULL test.
func NewIsNotNullTest(arg Expression) *NullTest {
	return &NullTest{
		BaseExpr:     BaseExpr{BaseNode: BaseNode{Tag: T_NullTest}},
		Arg:          arg,
		Nulltesttype: IS_NOT_NULL,
	}
}

func (nt *NullTest) ExpressionType() string {
	return "NullTest"
}

func (nt *NullTest) String() string {
	testStrs := map[NullTestType]string{
		IS_NULL: "IS NULL", IS_NOT_NULL: "IS NOT NULL",
	}
	testStr := testStrs[nt.Nulltesttype]
	if testStr == "" {
		testStr = fmt.Sprintf("NULLTEST_%d", int(nt.Nulltesttype))
	}
	row := ""
	if nt.Argisrow {
		row = " (ROW)"
	}
	return fmt.Sprintf("NullTest(%s %s%s)", nt.Arg, testStr, row)
}
