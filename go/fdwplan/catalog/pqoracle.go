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
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lib/pq"

	"github.com/multigres/pgfdwplan/go/common/mterrors"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// PQOracle implements Oracle against a live Postgres pg_catalog over a
// database/sql connection pool opened with the lib/pq driver. Every method
// that models a syscache lookup issues one query and reports a failed query
// (sql.ErrNoRows or any other driver error) with the same "cache lookup
// failed" phrasing FakeOracle uses, wrapping the driver error as the cause.
type PQOracle struct {
	db            *sql.DB
	log           *slog.Logger
	builtinCutoff ast.Oid

	mu       sync.Mutex
	registry map[ast.Datum]any
	nextID   ast.Datum
}

// NewPQOracle wraps an already-opened *sql.DB. Callers own db's lifecycle;
// PQOracle never closes it.
func NewPQOracle(db *sql.DB, builtinCutoff ast.Oid, log *slog.Logger) *PQOracle {
	if log == nil {
		log = slog.Default()
	}
	return &PQOracle{
		db:            db,
		log:           log,
		builtinCutoff: builtinCutoff,
		registry:      make(map[ast.Datum]any),
	}
}

// Box registers value under a fresh Datum handle so it can travel through
// ast.Const/ast.Param nodes and later be resolved by TypeOutput. Mirrors
// testfixture's StringDatum pattern, generalized to any Go value, since
// ast.Datum here is only ever used as an opaque handle, never as a raw
// pointer into a C heap.
func (o *PQOracle) Box(value any) ast.Datum {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	o.registry[o.nextID] = value
	return o.nextID
}

func (o *PQOracle) unbox(d ast.Datum) (any, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.registry[d]
	return v, ok
}

func (o *PQOracle) IsBuiltin(oid ast.Oid) bool {
	return oid < o.builtinCutoff
}

func (o *PQOracle) queryString(ctx context.Context, query string, args ...any) (string, error) {
	var s string
	err := o.db.QueryRowContext(ctx, query, args...).Scan(&s)
	o.log.Debug("catalog lookup", slog.String("query", query), slog.Any("args", args), slog.Any("err", err))
	return s, err
}

func (o *PQOracle) NamespaceName(oid ast.Oid) (string, error) {
	name, err := o.queryString(context.Background(), `SELECT nspname FROM pg_namespace WHERE oid = $1`, uint32(oid))
	if err != nil {
		return "", o.lookupFailed("namespace", oid, err)
	}
	return name, nil
}

func (o *PQOracle) RelationNamespace(relOid ast.Oid) (ast.Oid, error) {
	var nsOid uint32
	err := o.db.QueryRowContext(context.Background(), `SELECT relnamespace FROM pg_class WHERE oid = $1`, uint32(relOid)).Scan(&nsOid)
	if err != nil {
		return 0, o.lookupFailed("relation", relOid, err)
	}
	return ast.Oid(nsOid), nil
}

func (o *PQOracle) RelationName(relOid ast.Oid) (string, error) {
	name, err := o.queryString(context.Background(), `SELECT relname FROM pg_class WHERE oid = $1`, uint32(relOid))
	if err != nil {
		return "", o.lookupFailed("relation", relOid, err)
	}
	return name, nil
}

func (o *PQOracle) AttributeName(relOid ast.Oid, attnum ast.AttrNumber) (string, error) {
	name, err := o.queryString(context.Background(),
		`SELECT attname FROM pg_attribute WHERE attrelid = $1 AND attnum = $2`, uint32(relOid), int16(attnum))
	if err != nil {
		return "", mterrors.CatalogLookupFailed(err, "cache lookup failed for attribute %d of relation %d", attnum, relOid)
	}
	return name, nil
}

func (o *PQOracle) AttributeIsDropped(relOid ast.Oid, attnum ast.AttrNumber) bool {
	var dropped bool
	err := o.db.QueryRowContext(context.Background(),
		`SELECT attisdropped FROM pg_attribute WHERE attrelid = $1 AND attnum = $2`, uint32(relOid), int16(attnum)).Scan(&dropped)
	if err != nil {
		o.log.Error("attribute-dropped lookup failed", slog.Int64("relOid", int64(relOid)), slog.Int("attnum", int(attnum)), slog.Any("err", err))
		return false
	}
	return dropped
}

func (o *PQOracle) ForeignTableOptions(relOid ast.Oid) ([]FDWOption, error) {
	var opts []string
	err := o.db.QueryRowContext(context.Background(),
		`SELECT COALESCE(ftoptions, ARRAY[]::text[]) FROM pg_foreign_table WHERE ftrelid = $1`, uint32(relOid)).
		Scan(pq.Array(&opts))
	if err != nil {
		return nil, mterrors.CatalogLookupFailed(err, "cache lookup failed for foreign table %d", relOid)
	}
	return parseOptionPairs(opts), nil
}

func (o *PQOracle) ForeignColumnOptions(relOid ast.Oid, attnum ast.AttrNumber) ([]FDWOption, error) {
	var opts []string
	err := o.db.QueryRowContext(context.Background(),
		`SELECT COALESCE(attfdwoptions, ARRAY[]::text[]) FROM pg_attribute WHERE attrelid = $1 AND attnum = $2`,
		uint32(relOid), int16(attnum)).Scan(pq.Array(&opts))
	if err != nil {
		return nil, mterrors.CatalogLookupFailed(err, "cache lookup failed for column %d of relation %d", attnum, relOid)
	}
	return parseOptionPairs(opts), nil
}

func (o *PQOracle) LookupOperator(oid ast.Oid) (OperatorInfo, error) {
	var (
		name string
		ns   uint32
		kind string
	)
	err := o.db.QueryRowContext(context.Background(),
		`SELECT oprname, oprnamespace, oprkind FROM pg_operator WHERE oid = $1`, uint32(oid)).Scan(&name, &ns, &kind)
	if err != nil {
		return OperatorInfo{}, o.lookupFailed("operator", oid, err)
	}
	return OperatorInfo{Name: name, NamespaceOid: ast.Oid(ns), Kind: OperatorKind(kind[0])}, nil
}

func (o *PQOracle) LookupFunction(oid ast.Oid) (FunctionInfo, error) {
	var (
		name string
		ns   uint32
	)
	err := o.db.QueryRowContext(context.Background(),
		`SELECT proname, pronamespace FROM pg_proc WHERE oid = $1`, uint32(oid)).Scan(&name, &ns)
	if err != nil {
		return FunctionInfo{}, o.lookupFailed("function", oid, err)
	}
	return FunctionInfo{Name: name, NamespaceOid: ast.Oid(ns)}, nil
}

func (o *PQOracle) ContainsMutableFunction(expr ast.Node) bool {
	var funcids []ast.Oid
	walkFuncids(expr, func(id ast.Oid) { funcids = append(funcids, id) })
	if len(funcids) == 0 {
		return false
	}

	ids := make([]int64, len(funcids))
	for i, id := range funcids {
		ids[i] = int64(id)
	}

	rows, err := o.db.QueryContext(context.Background(),
		`SELECT provolatile FROM pg_proc WHERE oid = ANY($1)`, pq.Array(ids))
	if err != nil {
		o.log.Error("mutable-function lookup failed", slog.Any("err", err))
		return true // fail closed: treat lookup failure as "might be mutable"
	}
	defer rows.Close()

	for rows.Next() {
		var volatility string
		if err := rows.Scan(&volatility); err != nil {
			o.log.Error("mutable-function scan failed", slog.Any("err", err))
			return true
		}
		if volatility != "i" {
			return true
		}
	}
	return false
}

func (o *PQOracle) ExprType(expr ast.Node) (ast.Oid, error) {
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

func (o *PQOracle) ExprIsLengthCoercion(expr ast.Node) (int32, bool) {
	return exprIsLengthCoercion(expr)
}

func (o *PQOracle) FormatTypeWithTypmod(oid ast.Oid, typmod int32) (string, error) {
	name, err := o.queryString(context.Background(), `SELECT format_type($1, $2)`, uint32(oid), typmod)
	if err != nil {
		return "", o.lookupFailed("type", oid, err)
	}
	return name, nil
}

func (o *PQOracle) QuoteIdentifier(name string) string {
	return ast.QuoteIdentifier(name)
}

func (o *PQOracle) TypeOutput(oid ast.Oid, value ast.Datum) (string, error) {
	boxed, ok := o.unbox(value)
	if !ok {
		return "", mterrors.CatalogLookupFailed(nil, "cache lookup failed for type output function of type %d: unregistered datum", oid)
	}
	return fmt.Sprintf("%v", boxed), nil
}

func (o *PQOracle) WithPortableOutput(fn func() error) error {
	ctx := context.Background()
	if _, err := o.db.ExecContext(ctx, `SET LOCAL DateStyle = 'ISO'`); err != nil {
		return fmt.Errorf("failed to switch to portable output mode: %w", err)
	}
	defer o.db.ExecContext(ctx, `RESET DateStyle`)
	return fn()
}

func (o *PQOracle) lookupFailed(kind string, oid ast.Oid, err error) error {
	return mterrors.CatalogLookupFailed(err, "cache lookup failed for %s %d", kind, oid)
}

// parseOptionPairs turns pg_foreign_table.ftoptions-style "name=value"
// strings into FDWOption pairs.
func parseOptionPairs(opts []string) []FDWOption {
	pairs := make([]FDWOption, 0, len(opts))
	for _, o := range opts {
		name, value, found := strings.Cut(o, "=")
		if !found {
			continue
		}
		pairs = append(pairs, FDWOption{Name: name, Value: value})
	}
	return pairs
}
