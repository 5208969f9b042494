package deparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/deparse"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/fdwplan/testfixture"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

func renderExpr(t *testing.T, node ast.Node) string {
	t.Helper()
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, node, rel, oracle))
	return buf.String()
}

func TestDeparseVarUsesRemoteColumnNameOverride(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, ast.NewVar(rel.Varno, 1, ast.INT4OID), rel, oracle))
	assert.Equal(t, `"C 1"`, buf.String())
}

func TestDeparseVarWithoutOverrideUsesLocalName(t *testing.T) {
	got := renderExpr(t, ast.NewVar(1, 2, ast.INT4OID))
	assert.Equal(t, "c2", got)
}

func TestDeparseIntegerConstantIsBareNoCast(t *testing.T) {
	got := renderExpr(t, ast.NewConst(ast.INT4OID, ast.Datum(101), false))
	assert.Equal(t, "101", got)
}

func TestDeparseTextConstantGetsCastSuffix(t *testing.T) {
	got := renderExpr(t, ast.NewConst(ast.TEXTOID, testfixture.StringDatum("1"), false))
	assert.Equal(t, "'1'::text", got)
}

func TestDeparseBpcharConstantGetsCastSuffix(t *testing.T) {
	got := renderExpr(t, ast.NewConst(ast.BPCHAROID, testfixture.StringDatum("1"), false))
	assert.Equal(t, "'1'::bpchar", got)
}

func TestDeparseBooleanConstantHasNoCast(t *testing.T) {
	got := renderExpr(t, ast.NewConst(ast.BOOLOID, ast.Datum(1), false))
	assert.Equal(t, "true", got)
}

func TestDeparseNumericConstantWithIntegerValueStillGetsCast(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	oracle.Types[ast.NUMERICOID] = catalog.TypeInfo{Name: "numeric"}
	oracle.TypeOutputs[ast.NUMERICOID] = func(ast.Datum) string { return "100" }

	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, ast.NewConst(ast.NUMERICOID, 0, false), rel, oracle))
	assert.Equal(t, "100::numeric", buf.String())
}

func TestDeparseNumericConstantWithFloatValueUnconstrainedOmitsCast(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	oracle.Types[ast.NUMERICOID] = catalog.TypeInfo{Name: "numeric"}
	oracle.TypeOutputs[ast.NUMERICOID] = func(ast.Datum) string { return "1.5" }

	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, ast.NewConst(ast.NUMERICOID, 0, false), rel, oracle))
	assert.Equal(t, "1.5", buf.String())
}

func TestDeparseNullConstantAlwaysCarriesCast(t *testing.T) {
	got := renderExpr(t, ast.NewConst(ast.INT4OID, 0, true))
	assert.Equal(t, "NULL::integer", got)
}

func TestDeparseEscapeStringConstant(t *testing.T) {
	// SELECT * FROM ft1 WHERE c6 = E'foo''s\bar'
	got := renderExpr(t, ast.NewConst(ast.TEXTOID, testfixture.StringDatum(`foo's\bar`), false))
	assert.Equal(t, `E'foo''s\\bar'::text`, got)
}

func TestDeparseParamIncludesOriginalIDAndType(t *testing.T) {
	got := renderExpr(t, ast.NewParam(ast.PARAM_EXTERN, 1, ast.INT4OID))
	assert.Equal(t, "$1::integer", got)
}

func TestDeparseOpExprInfixSelfParenthesizes(t *testing.T) {
	op := ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(1, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(101), false))
	got := renderExpr(t, op)
	assert.Equal(t, `("C 1" = 101)`, got)
}

func TestDeparseDistinctExpr(t *testing.T) {
	d := ast.NewDistinctExpr(testfixture.OpEq, 0, []ast.Node{ast.NewVar(1, 2, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(1), false)})
	got := renderExpr(t, d)
	assert.Equal(t, "(c2 IS DISTINCT FROM 1)", got)
}

func TestDeparseScalarArrayOpExprAny(t *testing.T) {
	// SELECT * FROM ft1 WHERE c1 = ANY(ARRAY[c2, 1, c1 + 0])
	c1 := ast.NewVar(1, 1, ast.INT4OID)
	c2 := ast.NewVar(1, 2, ast.INT4OID)
	one := ast.NewConst(ast.INT4OID, ast.Datum(1), false)
	plus := ast.NewBinaryOp(testfixture.OpAdd, ast.NewVar(1, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(0), false))
	arr := ast.NewArrayConstructor([]ast.Node{c2, one, plus})
	arr.ArrayTypeid = ast.INT4ARRAYOID

	sao := ast.NewAnyExpr(testfixture.OpEq, c1, arr)
	got := renderExpr(t, sao)
	assert.Equal(t, `("C 1" = ANY (ARRAY[c2, 1, ("C 1" + 0)]))`, got)
}

func TestDeparseRelabelTypeExplicitAppendsCast(t *testing.T) {
	rt := ast.NewExplicitRelabelType(ast.NewVar(1, 1, ast.INT4OID), ast.TEXTOID)
	got := renderExpr(t, rt)
	assert.Equal(t, `"C 1"::text`, got)
}

func TestDeparseRelabelTypeImplicitOmitsCast(t *testing.T) {
	rt := ast.NewImplicitRelabelType(ast.NewVar(1, 1, ast.INT4OID), ast.TEXTOID)
	got := renderExpr(t, rt)
	assert.Equal(t, `"C 1"`, got)
}

func TestDeparseBoolExprAndJoinsWithWord(t *testing.T) {
	a := ast.NewConst(ast.BOOLOID, 1, false)
	b := ast.NewConst(ast.BOOLOID, 0, false)
	got := renderExpr(t, ast.NewAndExpr(a, b))
	assert.Equal(t, "(true AND false)", got)
}

func TestDeparseBoolExprNot(t *testing.T) {
	got := renderExpr(t, ast.NewNotExpr(ast.NewConst(ast.BOOLOID, 1, false)))
	assert.Equal(t, "(NOT true)", got)
}

func TestDeparseNullTest(t *testing.T) {
	got := renderExpr(t, ast.NewIsNullTest(ast.NewVar(1, 1, ast.INT4OID)))
	assert.Equal(t, `("C 1" IS NULL)`, got)

	got = renderExpr(t, ast.NewIsNotNullTest(ast.NewVar(1, 1, ast.INT4OID)))
	assert.Equal(t, `("C 1" IS NOT NULL)`, got)
}

func TestDeparseArrayExprEmptyGetsCast(t *testing.T) {
	arr := ast.NewArrayConstructor(nil)
	arr.ArrayTypeid = ast.INT4ARRAYOID
	got := renderExpr(t, arr)
	assert.Equal(t, "ARRAY[]::integer[]", got)
}

func TestDeparseFuncExprQualifiesNonPgCatalogSchema(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	oracle.Namespaces[16400] = "myschema"
	oracle.Functions[9999] = catalog.FunctionInfo{Name: "myfunc", NamespaceOid: 16400}

	fn := ast.NewFuncExpr(9999, ast.INT4OID, []ast.Node{ast.NewVar(1, 1, ast.INT4OID)})
	fn.Funcformat = ast.COERCE_EXPLICIT_CALL

	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, fn, rel, oracle))
	assert.Equal(t, `myschema.myfunc("C 1")`, buf.String())
}

func TestDeparseFuncExprNormalCall(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	fn := ast.NewFuncExpr(testfixture.FuncInt4Add, ast.INT4OID, []ast.Node{ast.NewVar(1, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(0), false)})
	fn.Funcformat = ast.COERCE_EXPLICIT_CALL
	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, fn, rel, oracle))
	assert.Equal(t, `int4pl("C 1", 0)`, buf.String())
}

func TestDeparseFuncExprExplicitCastUsesLengthCoercionTypmod(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	oracle.Types[ast.VARCHAROID] = catalog.TypeInfo{
		Formatter: func(typmod int32) string {
			if typmod < 0 {
				return "character varying"
			}
			return "character varying(" + string(rune('0'+typmod)) + ")"
		},
	}

	arg := ast.NewVar(1, 3, ast.TEXTOID)
	typmod := ast.NewConst(ast.INT4OID, ast.Datum(5), false)
	fn := ast.NewFuncExpr(1, ast.VARCHAROID, []ast.Node{arg, typmod})
	fn.Funcformat = ast.COERCE_EXPLICIT_CAST

	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, fn, rel, oracle))
	assert.Equal(t, "(c3::character varying(5))", buf.String())
}

func TestDeparseUnsupportedNodeKindReturnsError(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()
	buf := sqlwriter.New()
	err := deparse.Expr(buf, ast.NewNodeList(), rel, oracle)
	assert.Error(t, err)
}
