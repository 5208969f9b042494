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

// Package deparse renders an admitted expression tree back into SQL text
// for the remote dialect. It mirrors the walker's accepted node-kind set
// one-for-one: any node kind that reaches here without a case is a
// walker/deparser contract violation, reported through mterrors.
//
// Grounded on the deparseExpr/deparseVar/deparseConst/deparseFuncExpr/
// deparseOpExpr family in the retrieved deparse.c: each Expr renders its
// own kind, and composite forms parenthesize themselves exactly once.
package deparse

import (
	"regexp"
	"strings"

	"github.com/multigres/pgfdwplan/go/common/mterrors"
	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

var numericLiteralRegex = regexp.MustCompile(`^[0-9+\-eE.]*$`)

const pgCatalogSchema = "pg_catalog"

// Expr renders node into buf as remote SQL text, resolving Variable column
// names against rel and all other catalog metadata against oracle.
func Expr(buf *sqlwriter.Buffer, node ast.Node, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	switch n := node.(type) {
	case *ast.Var:
		return deparseVar(buf, n, rel, oracle)
	case *ast.Const:
		return deparseConst(buf, n, oracle)
	case *ast.Param:
		return deparseParam(buf, n, oracle)
	case *ast.SubscriptingRef:
		return deparseSubscriptingRef(buf, n, rel, oracle)
	case *ast.FuncExpr:
		return deparseFuncExpr(buf, n, rel, oracle)
	case *ast.OpExpr:
		return deparseOpExpr(buf, n, rel, oracle)
	case *ast.DistinctExpr:
		return deparseDistinctExpr(buf, n, rel, oracle)
	case *ast.ScalarArrayOpExpr:
		return deparseScalarArrayOpExpr(buf, n, rel, oracle)
	case *ast.RelabelType:
		return deparseRelabelType(buf, n, rel, oracle)
	case *ast.BoolExpr:
		return deparseBoolExpr(buf, n, rel, oracle)
	case *ast.NullTest:
		return deparseNullTest(buf, n, rel, oracle)
	case *ast.ArrayExpr:
		return deparseArrayExpr(buf, n, rel, oracle)
	default:
		return mterrors.UnsupportedNodeKind(node.NodeTag().String())
	}
}

func deparseVar(buf *sqlwriter.Buffer, v *ast.Var, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	name := ""
	if col, ok := rel.ColumnByAttNum(v.Varattno); ok {
		if col.HasOverride {
			name = col.RemoteName
		} else {
			name = col.LocalName
		}
	}
	buf.WriteString(oracle.QuoteIdentifier(name))
	return nil
}

func deparseConst(buf *sqlwriter.Buffer, c *ast.Const, oracle catalog.Oracle) error {
	typename, err := oracle.FormatTypeWithTypmod(c.Consttype, c.Consttypmod)
	if err != nil {
		return err
	}

	if c.Constisnull {
		buf.WriteString("NULL::").WriteString(typename)
		return nil
	}

	text, err := oracle.TypeOutput(c.Consttype, c.Constvalue)
	if err != nil {
		return err
	}

	isNumericType := isNumericTypeOid(c.Consttype)

	switch {
	case isNumericType && numericLiteralRegex.MatchString(text):
		if strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-") {
			buf.WriteByte('(').WriteString(text).WriteByte(')')
		} else {
			buf.WriteString(text)
		}
	case c.Consttype == ast.BITOID || c.Consttype == ast.VARBITOID:
		buf.WriteBitLiteral(text)
	case c.Consttype == ast.BOOLOID:
		if text == "t" || text == "true" {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	default:
		buf.WriteStringLiteral(text)
	}

	isFloat := strings.ContainsAny(text, "eE.")
	if needsCastSuffix(c.Consttype, c.Consttypmod, isNumericType, isFloat) {
		buf.WriteString("::").WriteString(typename)
	}
	return nil
}

func isNumericTypeOid(oid ast.Oid) bool {
	switch oid {
	case ast.INT2OID, ast.INT4OID, ast.INT8OID, ast.FLOAT4OID, ast.FLOAT8OID, ast.NUMERICOID, ast.OIDOID:
		return true
	default:
		return false
	}
}

// needsCastSuffix implements the constant cast-suffix rule: no suffix for
// boolean, int4, or unknown; for numeric, no suffix only if the text is a
// float literal (contains 'e', 'E', or '.') and the typmod is negative
// (unconstrained) - an integer-valued numeric like "100" still needs the
// cast, since it would otherwise reparse as int4; every other type gets an
// explicit cast.
func needsCastSuffix(oid ast.Oid, typmod int32, isNumeric, isFloat bool) bool {
	switch oid {
	case ast.BOOLOID, ast.INT4OID, ast.UNKNOWNOID:
		return false
	case ast.NUMERICOID:
		if typmod < 0 && isFloat {
			return false
		}
		return true
	default:
		return true
	}
}

func deparseParam(buf *sqlwriter.Buffer, p *ast.Param, oracle catalog.Oracle) error {
	typename, err := oracle.FormatTypeWithTypmod(p.Paramtype, p.Paramtypmod)
	if err != nil {
		return err
	}
	buf.WriteByte('$').WriteInt(int64(p.Paramid)).WriteString("::").WriteString(typename)
	return nil
}

func deparseSubscriptingRef(buf *sqlwriter.Buffer, r *ast.SubscriptingRef, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	buf.WriteByte('(')
	if _, isVar := r.Refexpr.(*ast.Var); isVar {
		if err := Expr(buf, r.Refexpr, rel, oracle); err != nil {
			return err
		}
	} else {
		buf.WriteByte('(')
		if err := Expr(buf, r.Refexpr, rel, oracle); err != nil {
			return err
		}
		buf.WriteByte(')')
	}

	for i, up := range r.Refupperindexpr {
		buf.WriteByte('[')
		if i < len(r.Reflowerindexpr) {
			if err := Expr(buf, r.Reflowerindexpr[i], rel, oracle); err != nil {
				return err
			}
			buf.WriteByte(':')
		}
		if err := Expr(buf, up, rel, oracle); err != nil {
			return err
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(')')
	return nil
}

func deparseFuncExpr(buf *sqlwriter.Buffer, f *ast.FuncExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	switch f.Funcformat {
	case ast.COERCE_IMPLICIT_CAST:
		return Expr(buf, f.Args[0], rel, oracle)
	case ast.COERCE_EXPLICIT_CAST:
		typmod := int32(-1)
		if tm, ok := oracle.ExprIsLengthCoercion(f); ok {
			typmod = tm
		}
		typename, err := oracle.FormatTypeWithTypmod(f.Funcresulttype, typmod)
		if err != nil {
			return err
		}
		buf.WriteByte('(')
		if err := Expr(buf, f.Args[0], rel, oracle); err != nil {
			return err
		}
		buf.WriteString("::").WriteString(typename)
		buf.WriteByte(')')
		return nil
	default:
		info, err := oracle.LookupFunction(f.Funcid)
		if err != nil {
			return err
		}
		if err := writeQualifiedName(buf, oracle, info.NamespaceOid, info.Name); err != nil {
			return err
		}
		buf.WriteByte('(')
		for i, arg := range f.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := Expr(buf, arg, rel, oracle); err != nil {
				return err
			}
		}
		buf.WriteByte(')')
		return nil
	}
}

// writeQualifiedName writes name, schema-qualifying it unless nsOid names
// pg_catalog.
func writeQualifiedName(buf *sqlwriter.Buffer, oracle catalog.Oracle, nsOid ast.Oid, name string) error {
	ns, err := oracle.NamespaceName(nsOid)
	if err != nil {
		return err
	}
	if ns != pgCatalogSchema {
		buf.WriteIdentifier(ns).WriteByte('.')
	}
	buf.WriteIdentifier(name)
	return nil
}

// writeOperatorName writes an operator's bare (unquoted) name, decorated
// with OPERATOR(schema.name) when it does not live in pg_catalog.
func writeOperatorName(buf *sqlwriter.Buffer, oracle catalog.Oracle, info catalog.OperatorInfo) error {
	ns, err := oracle.NamespaceName(info.NamespaceOid)
	if err != nil {
		return err
	}
	if ns == pgCatalogSchema {
		buf.WriteString(info.Name)
		return nil
	}
	buf.WriteString("OPERATOR(").WriteIdentifier(ns).WriteByte('.').WriteString(info.Name).WriteByte(')')
	return nil
}

func deparseOpExpr(buf *sqlwriter.Buffer, o *ast.OpExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	info, err := oracle.LookupOperator(o.Opno)
	if err != nil {
		return err
	}
	buf.WriteByte('(')
	switch info.Kind {
	case catalog.OperatorPrefix:
		if err := writeOperatorName(buf, oracle, info); err != nil {
			return err
		}
		buf.WriteByte(' ')
		if err := Expr(buf, o.Args[0], rel, oracle); err != nil {
			return err
		}
	case catalog.OperatorPostfix:
		if err := Expr(buf, o.Args[0], rel, oracle); err != nil {
			return err
		}
		buf.WriteByte(' ')
		if err := writeOperatorName(buf, oracle, info); err != nil {
			return err
		}
	default: // infix
		if err := Expr(buf, o.Args[0], rel, oracle); err != nil {
			return err
		}
		buf.WriteByte(' ')
		if err := writeOperatorName(buf, oracle, info); err != nil {
			return err
		}
		buf.WriteByte(' ')
		if err := Expr(buf, o.Args[1], rel, oracle); err != nil {
			return err
		}
	}
	buf.WriteByte(')')
	return nil
}

func deparseDistinctExpr(buf *sqlwriter.Buffer, d *ast.DistinctExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	buf.WriteByte('(')
	if err := Expr(buf, d.Args[0], rel, oracle); err != nil {
		return err
	}
	buf.WriteString(" IS DISTINCT FROM ")
	if err := Expr(buf, d.Args[1], rel, oracle); err != nil {
		return err
	}
	buf.WriteByte(')')
	return nil
}

func deparseScalarArrayOpExpr(buf *sqlwriter.Buffer, s *ast.ScalarArrayOpExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	info, err := oracle.LookupOperator(s.Opno)
	if err != nil {
		return err
	}
	buf.WriteByte('(')
	if err := Expr(buf, s.Args[0], rel, oracle); err != nil {
		return err
	}
	buf.WriteByte(' ')
	if err := writeOperatorName(buf, oracle, info); err != nil {
		return err
	}
	if s.UseOr {
		buf.WriteString(" ANY (")
	} else {
		buf.WriteString(" ALL (")
	}
	if err := Expr(buf, s.Args[1], rel, oracle); err != nil {
		return err
	}
	buf.WriteString("))")
	return nil
}

func deparseRelabelType(buf *sqlwriter.Buffer, r *ast.RelabelType, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	if err := Expr(buf, r.Arg, rel, oracle); err != nil {
		return err
	}
	if r.Relabelformat != ast.COERCE_IMPLICIT_CAST {
		typename, err := oracle.FormatTypeWithTypmod(r.Resulttype, r.Resulttypmod)
		if err != nil {
			return err
		}
		buf.WriteString("::").WriteString(typename)
	}
	return nil
}

func deparseBoolExpr(buf *sqlwriter.Buffer, b *ast.BoolExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	if b.Boolop == ast.NOT_EXPR {
		buf.WriteString("(NOT ")
		if err := Expr(buf, b.Args[0], rel, oracle); err != nil {
			return err
		}
		buf.WriteByte(')')
		return nil
	}

	word := " AND "
	if b.Boolop == ast.OR_EXPR {
		word = " OR "
	}
	buf.WriteByte('(')
	for i, arg := range b.Args {
		if i > 0 {
			buf.WriteString(word)
		}
		if err := Expr(buf, arg, rel, oracle); err != nil {
			return err
		}
	}
	buf.WriteByte(')')
	return nil
}

func deparseNullTest(buf *sqlwriter.Buffer, nt *ast.NullTest, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	buf.WriteByte('(')
	if err := Expr(buf, nt.Arg, rel, oracle); err != nil {
		return err
	}
	if nt.Nulltesttype == ast.IS_NULL {
		buf.WriteString(" IS NULL)")
	} else {
		buf.WriteString(" IS NOT NULL)")
	}
	return nil
}

func deparseArrayExpr(buf *sqlwriter.Buffer, a *ast.ArrayExpr, rel *plancontext.ForeignRelation, oracle catalog.Oracle) error {
	buf.WriteString("ARRAY[")
	for i, elem := range a.Elements {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := Expr(buf, elem, rel, oracle); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	if len(a.Elements) == 0 {
		typename, err := oracle.FormatTypeWithTypmod(a.ArrayTypeid, -1)
		if err != nil {
			return err
		}
		buf.WriteString("::").WriteString(typename)
	}
	return nil
}

