package walker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/pgfdwplan/go/fdwplan/testfixture"
	"github.com/multigres/pgfdwplan/go/fdwplan/walker"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

const posixCollationOid ast.Oid = 951

func TestVarBelongingToRelationIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	v := ast.NewVar(rel.Varno, 1, ast.INT4OID)

	ok, params, err := walker.ForeignExpr(v, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, params)
}

func TestVarFromAnotherRelationIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	v := ast.NewVar(rel.Varno+1, 1, ast.INT4OID)

	ok, _, err := walker.ForeignExpr(v, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVarAtDeeperSublevelIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	v := ast.NewVar(rel.Varno, 1, ast.INT4OID)
	v.Varlevelsup = 1

	ok, _, err := walker.ForeignExpr(v, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConstWithDefaultCollationIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	c := ast.NewConst(ast.INT4OID, ast.Datum(101), false)

	ok, _, err := walker.ForeignExpr(c, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConstWithNonDefaultCollationIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	c := ast.NewConst(ast.TEXTOID, testfixture.StringDatum("foo"), false)
	c.Constcollid = posixCollationOid

	ok, _, err := walker.ForeignExpr(c, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExternalParamIsAdmittedAndRecorded(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	p := ast.NewParam(ast.PARAM_EXTERN, 1, ast.INT4OID)

	ok, params, err := walker.ForeignExpr(p, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1}, params)
}

func TestInternalParamIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	p := ast.NewParam(ast.PARAM_EXEC, 1, ast.INT4OID)

	ok, _, err := walker.ForeignExpr(p, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuiltinOpExprOnAdmittedOperandsIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	v := ast.NewVar(rel.Varno, 1, ast.INT4OID)
	c := ast.NewConst(ast.INT4OID, ast.Datum(101), false)
	op := ast.NewBinaryOp(testfixture.OpEq, v, c)
	op.Opresulttype = ast.BOOLOID

	ok, _, err := walker.ForeignExpr(op, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNonBuiltinFunctionIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	arg := ast.NewVar(rel.Varno, 1, ast.INT4OID)
	fn := ast.NewFuncExpr(90000, ast.INT4OID, []ast.Node{arg})

	ok, _, err := walker.ForeignExpr(fn, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNonBuiltinResultTypeIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	c := ast.NewConst(testfixture.UserEnumOid, testfixture.StringDatum("foo"), false)

	ok, _, err := walker.ForeignExpr(c, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScalarArrayOpExprIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	scalar := ast.NewVar(rel.Varno, 1, ast.INT4OID)
	c2 := ast.NewVar(rel.Varno, 2, ast.INT4OID)
	one := ast.NewConst(ast.INT4OID, ast.Datum(1), false)
	arr := ast.NewArrayConstructor([]ast.Node{c2, one})
	arr.ArrayTypeid = ast.INT4ARRAYOID
	arr.ElementTypeid = ast.INT4OID

	sao := ast.NewAnyExpr(testfixture.OpEq, scalar, arr)

	ok, _, err := walker.ForeignExpr(sao, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolExprAndOfAdmittedChildrenIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	left := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(1), false))
	left.Opresulttype = ast.BOOLOID
	right := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 2, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(2), false))
	right.Opresulttype = ast.BOOLOID
	and := ast.NewAndExpr(left, right)

	ok, _, err := walker.ForeignExpr(and, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNullTestIsAdmitted(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	nt := ast.NewIsNullTest(ast.NewVar(rel.Varno, 1, ast.INT4OID))

	ok, _, err := walker.ForeignExpr(nt, rel, oracle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubscriptingRefWithAssignmentIsRejected(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	ref := ast.NewArraySubscript(ast.INT4ARRAYOID, ast.INT4OID, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(1), false))
	ref.Refassgnexpr = ast.NewConst(ast.INT4OID, ast.Datum(5), false)

	ok, _, err := walker.ForeignExpr(ref, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMutableFunctionIsRejectedEvenIfBuiltin(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	oracle.MutableFunctions[testfixture.FuncInt4Add] = true
	fn := ast.NewFuncExpr(testfixture.FuncInt4Add, ast.INT4OID, []ast.Node{ast.NewVar(rel.Varno, 1, ast.INT4OID)})
	fn.Funcformat = ast.COERCE_EXPLICIT_CALL

	ok, _, err := walker.ForeignExpr(fn, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMismatchedForcedCollationIsRejected(t *testing.T) {
	// Models `f1 COLLATE "POSIX" = 'foo'` where f1's own collation is "C":
	// the operator's Inputcollid is forced to POSIX, but the merged operand
	// tag carries the Var's own collation, so they disagree and the whole
	// expression is rejected without ever modeling a COLLATE node.
	rel := testfixture.Ft3Relation()
	oracle := testfixture.NewOracle()

	f1 := ast.NewVar(rel.Varno, 1, ast.TEXTOID)
	f1.Varcollid = 950 // "C"
	lit := ast.NewConst(ast.TEXTOID, testfixture.StringDatum("foo"), false)

	op := ast.NewBinaryOp(testfixture.OpEq, f1, lit)
	op.Opresulttype = ast.BOOLOID
	op.Inputcollid = posixCollationOid
	op.Opcollid = ast.InvalidOid // boolean result is non-collatable; unused here

	ok, _, err := walker.ForeignExpr(op, rel, oracle)
	require.NoError(t, err)
	assert.False(t, ok)
}
