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

package classify_test

import (
	"fmt"
	"testing"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/pgfdwplan/go/fdwplan/classify"
	"github.com/multigres/pgfdwplan/go/fdwplan/deparse"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/fdwplan/testfixture"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// TestClassifiedRemoteCondIsSyntacticallyWellFormed exercises the
// idempotence property: a remote condition the classifier admits, once
// deparsed and wrapped in a throwaway SELECT ... WHERE, must parse as
// valid SQL. A walker/deparser mismatch that emits syntactically broken
// text for an admitted node would otherwise only surface against a live
// remote server.
func TestClassifiedRemoteCondIsSyntacticallyWellFormed(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()

	restrictions := []plancontext.Restriction{
		{Expr: ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(101), false))},
		{Expr: ast.NewIsNotNullTest(ast.NewVar(rel.Varno, 2, ast.INT4OID))},
		{Expr: ast.NewAndExpr(
			ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(1), false)),
			ast.NewIsNullTest(ast.NewVar(rel.Varno, 2, ast.INT4OID)),
		)},
	}

	result, err := classify.Conditions(restrictions, rel, oracle)
	require.NoError(t, err)
	require.NotEmpty(t, result.RemoteConds)

	for _, cond := range result.RemoteConds {
		buf := sqlwriter.New()
		require.NoError(t, deparse.Expr(buf, cond.Expr, rel, oracle))

		query := fmt.Sprintf("SELECT 1 WHERE %s", buf.String())
		_, err := pg_query.Parse(query)
		assert.NoErrorf(t, err, "deparsed clause %q does not parse: %v", buf.String(), err)
	}
}

// TestReparsingADeparsedClauseIsStable deparses an AND of two remote
// conditions, parses the emitted text twice via pg_query_go, and confirms
// both parses succeed and report the same number of statements. It does
// not classify the reparsed tree.
func TestReparsingADeparsedClauseIsStable(t *testing.T) {
	rel := testfixture.Ft1Relation()
	oracle := testfixture.NewOracle()

	cond := ast.NewAndExpr(
		ast.NewBinaryOp(testfixture.OpEq, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(1), false)),
		ast.NewBinaryOp(testfixture.OpGe, ast.NewVar(rel.Varno, 1, ast.INT4OID), ast.NewConst(ast.INT4OID, ast.Datum(0), false)),
	)

	buf := sqlwriter.New()
	require.NoError(t, deparse.Expr(buf, cond, rel, oracle))
	sql := buf.String()

	query := fmt.Sprintf("SELECT 1 WHERE %s", sql)

	first, err := pg_query.Parse(query)
	require.NoError(t, err)

	second, err := pg_query.Parse(query)
	require.NoError(t, err)

	require.NotNil(t, first.Stmts)
	require.NotNil(t, second.Stmts)
	assert.Equal(t, len(first.Stmts), len(second.Stmts))
}
