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

// Package exprjson decodes the closed expression-node grammar (Var, Const,
// Param, FuncExpr, OpExpr, DistinctExpr, ScalarArrayOpExpr, RelabelType,
// SubscriptingRef, BoolExpr, NullTest, ArrayExpr) from a small JSON shape,
// so a restriction clause built by some other planner component can be
// handed to the demo CLI without requiring a live query planner in front of
// it. Nothing under go/fdwplan reads this format; it exists solely as the
// cmd/pgfdwplan input contract.
package exprjson

import (
	"encoding/json"
	"fmt"

	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// Node is the wire shape of one expression node. Kind selects which of the
// remaining fields apply; unused fields are left zero and omitted on
// encode.
type Node struct {
	Kind string `json:"kind"`

	// Var
	Varno    ast.Index      `json:"varno,omitempty"`
	Varattno ast.AttrNumber `json:"varattno,omitempty"`
	Vartype  ast.Oid        `json:"vartype,omitempty"`

	// Const
	ConstType   ast.Oid `json:"const_type,omitempty"`
	ConstValue  string  `json:"const_value,omitempty"`
	ConstIsNull bool    `json:"const_is_null,omitempty"`

	// Param
	ParamID   int     `json:"param_id,omitempty"`
	ParamType ast.Oid `json:"param_type,omitempty"`

	// OpExpr / DistinctExpr / ScalarArrayOpExpr
	Opno     ast.Oid `json:"opno,omitempty"`
	Opfuncid ast.Oid `json:"opfuncid,omitempty"`
	Restype  ast.Oid `json:"restype,omitempty"`
	UseOr    bool    `json:"use_or,omitempty"`

	// FuncExpr
	Funcid         ast.Oid         `json:"funcid,omitempty"`
	Funcresulttype ast.Oid         `json:"funcresulttype,omitempty"`
	Funcformat     string          `json:"funcformat,omitempty"` // "call" | "explicit_cast" | "implicit_cast"

	// RelabelType
	Resulttype    ast.Oid `json:"resulttype,omitempty"`
	Relabelformat string  `json:"relabelformat,omitempty"` // "explicit" | "implicit"

	// BoolExpr
	Boolop string `json:"boolop,omitempty"` // "and" | "or" | "not"

	// NullTest
	NullTestKind string `json:"null_test_kind,omitempty"` // "is_null" | "is_not_null"

	// ArrayExpr
	ArrayTypeid   ast.Oid `json:"array_typeid,omitempty"`
	ElementTypeid ast.Oid `json:"element_typeid,omitempty"`

	// SubscriptingRef
	Refcontainertype ast.Oid `json:"refcontainertype,omitempty"`
	Refelemtype      ast.Oid `json:"refelemtype,omitempty"`

	// Shared operand slots, meaning depends on Kind.
	Arg      *Node  `json:"arg,omitempty"`
	Left     *Node  `json:"left,omitempty"`
	Right    *Node  `json:"right,omitempty"`
	Args     []Node `json:"args,omitempty"`
	Elements []Node `json:"elements,omitempty"`
	Refexpr  *Node  `json:"refexpr,omitempty"`
	Index    []Node `json:"index,omitempty"`
}

// Boxer turns a Const's textual value into the ast.Datum handle Oracle
// implementations expect. Callers pass a catalog.PQOracle.Box or an
// equivalent testfixture helper.
type Boxer func(text string) ast.Datum

// Decode parses raw JSON into an expression tree.
func Decode(raw []byte, box Boxer) (ast.Node, error) {
	var n Node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("exprjson: %w", err)
	}
	return n.toAST(box)
}

func (n *Node) toAST(box Boxer) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case "var":
		return ast.NewVar(n.Varno, n.Varattno, n.Vartype), nil

	case "const":
		if n.ConstIsNull {
			return ast.NewConst(n.ConstType, 0, true), nil
		}
		return ast.NewConst(n.ConstType, box(n.ConstValue), false), nil

	case "param":
		return ast.NewParam(ast.PARAM_EXTERN, n.ParamID, n.ParamType), nil

	case "op":
		args, err := n.decodeOperands(box)
		if err != nil {
			return nil, err
		}
		return ast.NewOpExpr(n.Opno, n.Opfuncid, n.Restype, args), nil

	case "distinct":
		args, err := n.decodeOperands(box)
		if err != nil {
			return nil, err
		}
		return ast.NewDistinctExpr(n.Opno, n.Opfuncid, args), nil

	case "scalar_array_op":
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("exprjson: scalar_array_op needs left and right")
		}
		scalar, err := n.Left.toAST(box)
		if err != nil {
			return nil, err
		}
		array, err := n.Right.toAST(box)
		if err != nil {
			return nil, err
		}
		return ast.NewScalarArrayOpExpr(n.Opno, n.UseOr, scalar, array), nil

	case "func":
		args, err := n.decodeOperands(box)
		if err != nil {
			return nil, err
		}
		f := ast.NewFuncExpr(n.Funcid, n.Funcresulttype, args)
		switch n.Funcformat {
		case "explicit_cast":
			f.Funcformat = ast.COERCE_EXPLICIT_CAST
		case "implicit_cast":
			f.Funcformat = ast.COERCE_IMPLICIT_CAST
		default:
			f.Funcformat = ast.COERCE_EXPLICIT_CALL
		}
		return f, nil

	case "relabel":
		if n.Arg == nil {
			return nil, fmt.Errorf("exprjson: relabel needs arg")
		}
		arg, err := n.Arg.toAST(box)
		if err != nil {
			return nil, err
		}
		argExpr, ok := arg.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("exprjson: relabel arg is not an expression")
		}
		if n.Relabelformat == "implicit" {
			return ast.NewImplicitRelabelType(argExpr, n.Resulttype), nil
		}
		return ast.NewExplicitRelabelType(argExpr, n.Resulttype), nil

	case "subscript":
		if n.Refexpr == nil {
			return nil, fmt.Errorf("exprjson: subscript needs refexpr")
		}
		refexpr, err := n.Refexpr.toAST(box)
		if err != nil {
			return nil, err
		}
		refExpr, ok := refexpr.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("exprjson: subscript refexpr is not an expression")
		}
		var upper []ast.Expression
		for i := range n.Index {
			idx, err := n.Index[i].toAST(box)
			if err != nil {
				return nil, err
			}
			idxExpr, ok := idx.(ast.Expression)
			if !ok {
				return nil, fmt.Errorf("exprjson: subscript index is not an expression")
			}
			upper = append(upper, idxExpr)
		}
		return ast.NewSubscriptingRef(n.Refcontainertype, n.Refelemtype, n.Restype, refExpr, upper), nil

	case "bool":
		args, err := n.decodeOperands(box)
		if err != nil {
			return nil, err
		}
		var op ast.BoolExprType
		switch n.Boolop {
		case "and":
			op = ast.AND_EXPR
		case "or":
			op = ast.OR_EXPR
		case "not":
			op = ast.NOT_EXPR
		default:
			return nil, fmt.Errorf("exprjson: unknown boolop %q", n.Boolop)
		}
		return ast.NewBoolExpr(op, args), nil

	case "null_test":
		if n.Arg == nil {
			return nil, fmt.Errorf("exprjson: null_test needs arg")
		}
		arg, err := n.Arg.toAST(box)
		if err != nil {
			return nil, err
		}
		argExpr, ok := arg.(ast.Expression)
		if !ok {
			return nil, fmt.Errorf("exprjson: null_test arg is not an expression")
		}
		if n.NullTestKind == "is_not_null" {
			return ast.NewIsNotNullTest(argExpr), nil
		}
		return ast.NewIsNullTest(argExpr), nil

	case "array":
		elements, err := decodeNodes(n.Elements, box)
		if err != nil {
			return nil, err
		}
		a := ast.NewArrayConstructor(elements)
		a.ArrayTypeid = n.ArrayTypeid
		a.ElementTypeid = n.ElementTypeid
		return a, nil

	case "list":
		items, err := decodeNodes(n.Args, box)
		if err != nil {
			return nil, err
		}
		return ast.NewNodeList(items...), nil

	default:
		return nil, fmt.Errorf("exprjson: unknown node kind %q", n.Kind)
	}
}

func (n *Node) decodeOperands(box Boxer) ([]ast.Node, error) {
	if n.Left != nil || n.Right != nil {
		var out []ast.Node
		if n.Left != nil {
			l, err := n.Left.toAST(box)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
		}
		if n.Right != nil {
			r, err := n.Right.toAST(box)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	}
	return decodeNodes(n.Args, box)
}

func decodeNodes(nodes []Node, box Boxer) ([]ast.Node, error) {
	out := make([]ast.Node, len(nodes))
	for i := range nodes {
		v, err := nodes[i].toAST(box)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
