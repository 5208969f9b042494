package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/pgfdwplan/go/fdwplan/classify"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/testfixture"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

func eqOp(rel *plancontext.ForeignRelation, attnum ast.AttrNumber, value ast.Datum) *ast.OpExpr {
	op := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, attnum, ast.INT4OID), ast.NewConst(ast.INT4OID, value, false))
	op.Opresulttype = ast.BOOLOID
	return op
}

func TestConditionsPartitionsIntoThreeDisjointBuckets(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()

	remoteClause := eqOp(rel, 1, ast.Datum(101))

	paramOp := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewParam(ast.PARAM_EXTERN, 1, ast.INT4OID))
	paramOp.Opresulttype = ast.BOOLOID

	localClause := ast.NewConst(testfixture.UserEnumOid, testfixture.StringDatum("foo"), false)

	restrictions := []plancontext.Restriction{
		{Expr: remoteClause},
		{Expr: paramOp},
		{Expr: localClause},
	}

	result, err := classify.Conditions(restrictions, rel, oracle)
	require.NoError(t, err)

	assert.Len(t, result.RemoteConds, 1)
	assert.Len(t, result.ParamConds, 1)
	assert.Len(t, result.LocalConds, 1)
	assert.Equal(t, []int{1}, result.ParamIDs)

	total := len(result.RemoteConds) + len(result.ParamConds) + len(result.LocalConds)
	assert.Equal(t, len(restrictions), total)
}

func TestConditionsDeduplicatesParamIDs(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()

	op1 := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewParam(ast.PARAM_EXTERN, 1, ast.INT4OID))
	op1.Opresulttype = ast.BOOLOID
	op2 := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 2, ast.INT4OID), ast.NewParam(ast.PARAM_EXTERN, 1, ast.INT4OID))
	op2.Opresulttype = ast.BOOLOID

	result, err := classify.Conditions([]plancontext.Restriction{{Expr: op1}, {Expr: op2}}, rel, oracle)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.ParamIDs)
	assert.Len(t, result.ParamConds, 2)
}

func TestConditionsEmptyListYieldsEmptyResult(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()

	result, err := classify.Conditions(nil, rel, oracle)
	require.NoError(t, err)
	assert.Empty(t, result.RemoteConds)
	assert.Empty(t, result.ParamConds)
	assert.Empty(t, result.LocalConds)
	assert.Empty(t, result.ParamIDs)
}
