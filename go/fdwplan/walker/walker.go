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

// Package walker implements the expression safety walker: a recursive
// post-order pass over a restriction-clause expression tree that decides
// whether the whole tree can be evaluated on the remote server with local
// semantics.
//
// Grounded on postgres_fdw's foreign_expr_walker in the retrieved
// deparse.c: the per-kind admissibility rules and the collation-safety
// bookkeeping mirror that function one arm at a time, but expressed as a
// type switch returning a value instead of threading an in/out struct
// pointer.
package walker

import (
	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/collation"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// Global accumulates state across the whole walk of one restriction clause:
// the external parameter IDs encountered. It is fresh per top-level call to
// ForeignExpr, per the classifier's contract.
type Global struct {
	ParamNumbers []int
}

func (g *Global) recordParam(id int) {
	g.ParamNumbers = append(g.ParamNumbers, id)
}

type context struct {
	oracle catalog.Oracle
	rel    *plancontext.ForeignRelation
	glob   *Global
}

// ForeignExpr is the walker's public entry point. It returns true and the
// list of external-parameter IDs found if root can be safely pushed to the
// remote server for rel; otherwise false. A non-nil error indicates a
// catalog inconsistency (fatal, per the error handling design), not an
// ordinary rejection.
func ForeignExpr(root ast.Node, rel *plancontext.ForeignRelation, oracle catalog.Oracle) (bool, []int, error) {
	ctx := &context{oracle: oracle, rel: rel, glob: &Global{}}
	ok, _, err := admit(root, ctx)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		return false, nil, nil
	}
	// Expensive; only run once, over the whole admitted tree, per the
	// walker's contract.
	if oracle.ContainsMutableFunction(root) {
		return false, nil, nil
	}
	return true, ctx.glob.ParamNumbers, nil
}

// admit implements one post-order step: dispatch on node kind, apply the
// kind-specific admissibility rule, then (for every kind but List) the
// generic built-in-result-type check, then return the node's own collation
// state for the caller to merge.
func admit(node ast.Node, ctx *context) (bool, collation.State, error) {
	switch n := node.(type) {
	case *ast.Var:
		return admitVar(n, ctx)
	case *ast.Const:
		return admitConst(n, ctx)
	case *ast.Param:
		return admitParam(n, ctx)
	case *ast.SubscriptingRef:
		return admitSubscriptingRef(n, ctx)
	case *ast.FuncExpr:
		return admitFuncExpr(n, ctx)
	case *ast.OpExpr:
		return admitOpExpr(n, ctx)
	case *ast.DistinctExpr:
		return admitDistinctExpr(n, ctx)
	case *ast.ScalarArrayOpExpr:
		return admitScalarArrayOpExpr(n, ctx)
	case *ast.RelabelType:
		return admitRelabelType(n, ctx)
	case *ast.BoolExpr:
		return admitBoolExpr(n, ctx)
	case *ast.NullTest:
		return admitNullTest(n, ctx)
	case *ast.ArrayExpr:
		return admitArrayExpr(n, ctx)
	case *ast.NodeList:
		return admitList(n, ctx)
	default:
		return false, collation.Init, nil
	}
}

// checkResultType applies the generic post-arm rule: reject unless the
// node's own result type is built-in. Callers other than List must run
// this after their kind-specific logic succeeds.
func checkResultType(resultType ast.Oid, ctx *context, state collation.State) (bool, collation.State, error) {
	if !ctx.oracle.IsBuiltin(resultType) {
		return false, collation.Init, nil
	}
	return true, state, nil
}

func admitVar(v *ast.Var, ctx *context) (bool, collation.State, error) {
	if v.Varlevelsup != 0 || v.Varno != ctx.rel.Varno {
		return false, collation.Init, nil
	}
	// A Var is itself the source of collation safety, not a node combining
	// a declared collation with children's merged state: it is Safe
	// whenever it has a valid collation at all.
	state := collation.State{Tag: collation.None, Collation: ast.InvalidOid}
	if v.Varcollid != ast.InvalidOid {
		state = collation.State{Tag: collation.Safe, Collation: v.Varcollid}
	}
	return checkResultType(v.Vartype, ctx, state)
}

func admitConst(c *ast.Const, ctx *context) (bool, collation.State, error) {
	if c.Constcollid != ast.InvalidOid && c.Constcollid != ast.DefaultCollationOid {
		return false, collation.Init, nil
	}
	return checkResultType(c.Consttype, ctx, collation.State{Tag: collation.None, Collation: ast.InvalidOid})
}

func admitParam(p *ast.Param, ctx *context) (bool, collation.State, error) {
	if p.Paramkind != ast.PARAM_EXTERN {
		return false, collation.Init, nil
	}
	if p.Paramcollid != ast.InvalidOid && p.Paramcollid != ast.DefaultCollationOid {
		return false, collation.Init, nil
	}
	ok, state, err := checkResultType(p.Paramtype, ctx, collation.State{Tag: collation.None, Collation: ast.InvalidOid})
	if ok {
		ctx.glob.recordParam(p.Paramid)
	}
	return ok, state, err
}

func admitSubscriptingRef(r *ast.SubscriptingRef, ctx *context) (bool, collation.State, error) {
	if r.Refassgnexpr != nil {
		return false, collation.Init, nil
	}
	inner := collation.Init
	children := make([]ast.Node, 0, len(r.Refupperindexpr)+len(r.Reflowerindexpr)+1)
	children = append(children, exprsToNodes(r.Refupperindexpr)...)
	children = append(children, exprsToNodes(r.Reflowerindexpr)...)
	children = append(children, r.Refexpr)
	ok, inner, err := admitChildren(children, ctx, inner)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	state := collation.FinalTag(r.Refcollid, inner)
	return checkResultType(r.Refrestype, ctx, state)
}

func admitFuncExpr(f *ast.FuncExpr, ctx *context) (bool, collation.State, error) {
	if !ctx.oracle.IsBuiltin(f.Funcid) {
		return false, collation.Init, nil
	}
	ok, inner, err := admitChildren(f.Args, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	if !inputCollationOK(f.Inputcollid, inner) {
		return false, collation.Init, nil
	}
	state := collation.FinalTag(f.Funccollid, inner)
	return checkResultType(f.Funcresulttype, ctx, state)
}

func admitOpExpr(o *ast.OpExpr, ctx *context) (bool, collation.State, error) {
	if !ctx.oracle.IsBuiltin(o.Opno) {
		return false, collation.Init, nil
	}
	ok, inner, err := admitChildren(o.Args, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	if !inputCollationOK(o.Inputcollid, inner) {
		return false, collation.Init, nil
	}
	state := collation.FinalTag(o.Opcollid, inner)
	return checkResultType(o.Opresulttype, ctx, state)
}

func admitDistinctExpr(d *ast.DistinctExpr, ctx *context) (bool, collation.State, error) {
	if !ctx.oracle.IsBuiltin(d.Opno) {
		return false, collation.Init, nil
	}
	ok, inner, err := admitChildren(d.Args, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	if !inputCollationOK(d.Inputcollid, inner) {
		return false, collation.Init, nil
	}
	state := collation.FinalTag(d.Opcollid, inner)
	return checkResultType(d.Opresulttype, ctx, state)
}

func admitScalarArrayOpExpr(s *ast.ScalarArrayOpExpr, ctx *context) (bool, collation.State, error) {
	if !ctx.oracle.IsBuiltin(s.Opno) {
		return false, collation.Init, nil
	}
	ok, inner, err := admitChildren(s.Args, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	if !inputCollationOK(s.Inputcollid, inner) {
		return false, collation.Init, nil
	}
	// Result is always boolean, non-collatable.
	return checkResultType(ast.BOOLOID, ctx, collation.State{Tag: collation.None, Collation: ast.InvalidOid})
}

func admitRelabelType(r *ast.RelabelType, ctx *context) (bool, collation.State, error) {
	ok, inner, err := admit(r.Arg, ctx)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	state := collation.FinalTag(r.Resultcollid, inner)
	return checkResultType(r.Resulttype, ctx, state)
}

func admitBoolExpr(b *ast.BoolExpr, ctx *context) (bool, collation.State, error) {
	ok, _, err := admitChildren(b.Args, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	return checkResultType(ast.BOOLOID, ctx, collation.State{Tag: collation.None, Collation: ast.InvalidOid})
}

func admitNullTest(nt *ast.NullTest, ctx *context) (bool, collation.State, error) {
	ok, _, err := admit(nt.Arg, ctx)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	return checkResultType(ast.BOOLOID, ctx, collation.State{Tag: collation.None, Collation: ast.InvalidOid})
}

func admitArrayExpr(a *ast.ArrayExpr, ctx *context) (bool, collation.State, error) {
	ok, inner, err := admitChildren(a.Elements, ctx, collation.Init)
	if err != nil || !ok {
		return false, collation.Init, err
	}
	state := collation.FinalTag(a.ArrayCollid, inner)
	return checkResultType(a.ArrayTypeid, ctx, state)
}

// admitList recurses into every element, but skips the built-in-type check
// on the list itself; the parent inherits the merged tag directly.
func admitList(l *ast.NodeList, ctx *context) (bool, collation.State, error) {
	return admitChildren(l.Items, ctx, collation.Init)
}

// admitChildren walks each child in order, folding its returned state into
// the accumulator via the collation merge rule. It stops at the first
// rejection or error.
func admitChildren(nodes []ast.Node, ctx *context, acc collation.State) (bool, collation.State, error) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		ok, state, err := admit(node, ctx)
		if err != nil {
			return false, collation.Init, err
		}
		if !ok {
			return false, collation.Init, nil
		}
		acc = collation.Merge(acc, state)
	}
	return true, acc, nil
}

// inputCollationOK implements the "same input-collation rule" shared by
// FuncExpr, OpExpr, DistinctExpr, and ScalarArrayOpExpr: if the node
// declares a valid input collation, the merged tag of its arguments must be
// Safe and must agree with that collation.
func inputCollationOK(inputCollid ast.Oid, inner collation.State) bool {
	if inputCollid == ast.InvalidOid {
		return true
	}
	return inner.Tag == collation.Safe && inner.Collation == inputCollid
}

func exprsToNodes(exprs []ast.Expression) []ast.Node {
	nodes := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
