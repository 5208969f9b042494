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

package catalog

import (
	"fmt"

	"github.com/multigres/pgfdwplan/go/common/mterrors"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// TypeInfo is a fake catalog entry for one type.
type TypeInfo struct {
	Name      string
	Formatter func(typmod int32) string // optional; overrides the plain Name rendering
}

// FakeOracle is an in-memory Oracle used by unit tests, letting §8's
// properties be exercised without a live database. Every lookup table
// defaults empty; tests populate only what a given scenario touches.
//
// Grounded on the Design Notes' explicit call for the catalog oracle to be
// an interface precisely so it can be faked in tests.
type FakeOracle struct {
	BuiltinCutoff ast.Oid

	Namespaces map[ast.Oid]string
	Types      map[ast.Oid]TypeInfo
	Functions  map[ast.Oid]FunctionInfo
	Operators  map[ast.Oid]OperatorInfo

	MutableFunctions map[ast.Oid]bool

	// TypeOutputs renders a Datum to text for a given type OID. Tests
	// supply a closure per type; a type with no closure makes TypeOutput
	// return a catalog-lookup error.
	TypeOutputs map[ast.Oid]func(ast.Datum) string
}

// NewFakeOracle returns an empty FakeOracle using the standard built-in
// cutoff.
func NewFakeOracle() *FakeOracle {
	return &FakeOracle{
		BuiltinCutoff:       ast.FirstBootstrapObjectId,
		Namespaces:          make(map[ast.Oid]string),
		Types:               make(map[ast.Oid]TypeInfo),
		Functions:           make(map[ast.Oid]FunctionInfo),
		Operators:           make(map[ast.Oid]OperatorInfo),
		MutableFunctions:    make(map[ast.Oid]bool),
		TypeOutputs:         make(map[ast.Oid]func(ast.Datum) string),
	}
}

func (o *FakeOracle) IsBuiltin(oid ast.Oid) bool {
	return oid < o.BuiltinCutoff
}

func (o *FakeOracle) NamespaceName(oid ast.Oid) (string, error) {
	if name, ok := o.Namespaces[oid]; ok {
		return name, nil
	}
	return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for namespace %d", oid)
}

func (o *FakeOracle) RelationNamespace(relOid ast.Oid) (ast.Oid, error) {
	return 0, mterrors.CatalogLookupFailed(nil, "cache lookup failed for relation %d", relOid)
}

func (o *FakeOracle) RelationName(relOid ast.Oid) (string, error) {
	return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for relation %d", relOid)
}

func (o *FakeOracle) AttributeName(relOid ast.Oid, attnum ast.AttrNumber) (string, error) {
	return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for attribute %d of relation %d", attnum, relOid)
}

func (o *FakeOracle) AttributeIsDropped(relOid ast.Oid, attnum ast.AttrNumber) bool {
	return false
}

func (o *FakeOracle) ForeignTableOptions(relOid ast.Oid) ([]FDWOption, error) {
	return nil, nil
}

func (o *FakeOracle) ForeignColumnOptions(relOid ast.Oid, attnum ast.AttrNumber) ([]FDWOption, error) {
	return nil, nil
}

func (o *FakeOracle) LookupOperator(oid ast.Oid) (OperatorInfo, error) {
	if info, ok := o.Operators[oid]; ok {
		return info, nil
	}
	return OperatorInfo{}, mterrors.CatalogLookupFailed(nil, "cache lookup failed for operator %d", oid)
}

func (o *FakeOracle) LookupFunction(oid ast.Oid) (FunctionInfo, error) {
	if info, ok := o.Functions[oid]; ok {
		return info, nil
	}
	return FunctionInfo{}, mterrors.CatalogLookupFailed(nil, "cache lookup failed for function %d", oid)
}

func (o *FakeOracle) ContainsMutableFunction(expr ast.Node) bool {
	found := false
	walkFuncids(expr, func(funcid ast.Oid) {
		if o.MutableFunctions[funcid] {
			found = true
		}
	})
	return found
}

func (o *FakeOracle) ExprType(expr ast.Node) (ast.Oid, error) {
	switch n := expr.(type) {
	case *ast.Var:
		return n.Vartype, nil
	case *ast.Const:
		return n.Consttype, nil
	case *ast.Param:
		return n.Paramtype, nil
	case *ast.FuncExpr:
		return n.Funcresulttype, nil
	case *ast.OpExpr:
		return n.Opresulttype, nil
	case *ast.RelabelType:
		return n.Resulttype, nil
	default:
		return 0, fmt.Errorf("cannot determine expression type for node kind %s", expr.NodeTag())
	}
}

// ExprIsLengthCoercion mirrors the core's exprIsLengthCoercion: a
// length-coercion cast (varchar(n), numeric(p,s), ...) is a cast FuncExpr
// whose second argument is a non-null typmod Const. Purely structural, no
// catalog state needed - kept as an Oracle method only so PQOracle and
// FakeOracle present one contract.
func (o *FakeOracle) ExprIsLengthCoercion(expr ast.Node) (int32, bool) {
	return exprIsLengthCoercion(expr)
}

func (o *FakeOracle) FormatTypeWithTypmod(oid ast.Oid, typmod int32) (string, error) {
	info, ok := o.Types[oid]
	if !ok {
		return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for type %d", oid)
	}
	if info.Formatter != nil {
		return info.Formatter(typmod), nil
	}
	return info.Name, nil
}

func (o *FakeOracle) QuoteIdentifier(name string) string {
	return ast.QuoteIdentifier(name)
}

func (o *FakeOracle) TypeOutput(oid ast.Oid, value ast.Datum) (string, error) {
	if fn, ok := o.TypeOutputs[oid]; ok {
		return fn(value), nil
	}
	return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for type output function of type %d", oid)
}

func (o *FakeOracle) WithPortableOutput(fn func() error) error {
	return fn()
}

// walkFuncids visits every FuncExpr's Funcid reachable from expr.
func walkFuncids(expr ast.Node, visit func(ast.Oid)) {
	if expr == nil {
		return
	}
	switch n := expr.(type) {
	case *ast.FuncExpr:
		visit(n.Funcid)
		for _, a := range n.Args {
			walkFuncids(a, visit)
		}
	case *ast.OpExpr:
		visit(n.Opfuncid)
		for _, a := range n.Args {
			walkFuncids(a, visit)
		}
	case *ast.DistinctExpr:
		visit(n.Opfuncid)
		for _, a := range n.Args {
			walkFuncids(a, visit)
		}
	case *ast.ScalarArrayOpExpr:
		visit(n.Opfuncid)
		for _, a := range n.Args {
			walkFuncids(a, visit)
		}
	case *ast.SubscriptingRef:
		for _, e := range n.Refupperindexpr {
			walkFuncids(e, visit)
		}
		for _, e := range n.Reflowerindexpr {
			walkFuncids(e, visit)
		}
		walkFuncids(n.Refexpr, visit)
	case *ast.RelabelType:
		walkFuncids(n.Arg, visit)
	case *ast.BoolExpr:
		for _, a := range n.Args {
			walkFuncids(a, visit)
		}
	case *ast.NullTest:
		walkFuncids(n.Arg, visit)
	case *ast.ArrayExpr:
		for _, e := range n.Elements {
			walkFuncids(e, visit)
		}
	case *ast.NodeList:
		for _, e := range n.Items {
			walkFuncids(e, visit)
		}
	}
}
