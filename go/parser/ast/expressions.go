// Package ast provides PostgreSQL AST expression node definitions.
// Ported from postgres/src/include/nodes/primnodes.h
package ast

import (
	"fmt"
)

// ==============================================================================
// EXPRESSION FRAMEWORK - PostgreSQL primnodes.h implementation
// Ported from postgres/src/include/nodes/primnodes.h
//
// Only the node kinds a foreign-relation restriction clause can be built
// from are represented here: statement, DDL, and range-table nodes live
// outside this package's concern.
// ==============================================================================

// Supporting types for expressions

// Oid represents an object identifier - ported from postgres/src/include/postgres_ext.h
type Oid uint32

// AttrNumber represents an attribute number - ported from postgres/src/include/access/attnum.h:21
type AttrNumber int16

// Index represents an array index - ported from postgres/src/include/c.h:614
type Index uint32

// Datum represents a PostgreSQL datum - ported from postgres/src/include/postgres.h:64
type Datum uintptr

// CoercionForm represents type coercion forms - ported from postgres/src/include/nodes/primnodes.h:732-737
type CoercionForm int

const (
	COERCE_EXPLICIT_CALL CoercionForm = iota // Explicit function call syntax
	COERCE_EXPLICIT_CAST                     // Explicit cast syntax
	COERCE_IMPLICIT_CAST                     // Implicit cast
	COERCE_SQL_SYNTAX                        // SQL standard syntax
)

// ParamKind represents parameter types - ported from postgres/src/include/nodes/primnodes.h:373-385
type ParamKind int

const (
	PARAM_EXTERN    ParamKind = iota // External parameter, bound by the client
	PARAM_EXEC                       // Executor internal parameter
	PARAM_SUBLINK                    // Sublink output column
	PARAM_MULTIEXPR                  // Multiexpr sublink column
)

// BoolExprType represents boolean expression types - ported from postgres/src/include/nodes/primnodes.h:929-932
type BoolExprType int

const (
	AND_EXPR BoolExprType = iota // AND expression
	OR_EXPR                      // OR expression
	NOT_EXPR                     // NOT expression
)

func (b BoolExprType) String() string {
	switch b {
	case AND_EXPR:
		return "AND"
	case OR_EXPR:
		return "OR"
	case NOT_EXPR:
		return "NOT"
	default:
		return fmt.Sprintf("BoolExprType(%d)", int(b))
	}
}

// ==============================================================================
// BASE EXPRESSION INTERFACE
// ==============================================================================

// Expr is the abstract base type for all expression nodes.
// Ported from postgres/src/include/nodes/primnodes.h:187-192
type Expr interface {
	Node
	ExpressionType() string
	IsExpr() bool
}

// BaseExpr provides common expression functionality.
type BaseExpr struct {
	BaseNode
}

func (e *BaseExpr) IsExpr() bool {
	return true
}

// ==============================================================================
// LEAF EXPRESSIONS - Var, Const, Param
// ==============================================================================

// Var represents a reference to a column of some relation in the range table.
// Ported from postgres/src/include/nodes/primnodes.h:247-294
type Var struct {
	BaseExpr
	Varno       Index      // Relation index in range table
	Varattno    AttrNumber // Attribute number (0 = whole-row)
	Vartype     Oid        // pg_type OID
	Vartypmod   int32      // Type modifier
	Varcollid   Oid        // Collation OID
	Varlevelsup Index      // Subquery nesting level; must be 0 for a remotable Var
	Varnosyn    Index      // Syntactic relation index
	Varattnosyn AttrNumber // Syntactic attribute number
}

// NewVar creates a new Var node.
func NewVar(varno Index, varattno AttrNumber, vartype Oid) *Var {
	return &Var{
		BaseExpr: BaseExpr{BaseNode: BaseNode{Tag: T_Var}},
		Varno:    varno,
		Varattno: varattno,
		Vartype:  vartype,
	}
}

func (v *Var) ExpressionType() string {
	return "Var"
}

func (v *Var) String() string {
	return fmt.Sprintf("Var(%d.%d)@%d", v.Varno, v.Varattno, v.Location())
}

// Const represents a constant value in an expression.
// Ported from postgres/src/include/nodes/primnodes.h:306-336
type Const struct {
	BaseExpr
	Consttype   Oid   // Datatype OID
	Consttypmod int32 // Type modifier
	Constcollid Oid   // Collation OID
	Constlen    int   // Type length
	Constvalue  Datum // The actual value
	Constisnull bool  // Whether null
	Constbyval  bool  // Pass by value?
}

// NewConst creates a new Const node.
func NewConst(consttype Oid, constvalue Datum, constisnull bool) *Const {
	return &Const{
		BaseExpr:    BaseExpr{BaseNode: BaseNode{Tag: T_Const}},
		Consttype:   consttype,
		Consttypmod: -1,
		Constvalue:  constvalue,
		Constisnull: constisnull,
	}
}

func (c *Const) ExpressionType() string {
	return "Const"
}

func (c *Const) String() string {
	if c.Constisnull {
		return fmt.Sprintf("Const(NULL)@%d", c.Location())
	}
	return fmt.Sprintf("Const(%v)@%d", c.Constvalue, c.Location())
}

// Param represents a parameter reference in a prepared statement.
// Only PARAM_EXTERN is ever admitted for remote evaluation.
// Ported from postgres/src/include/nodes/primnodes.h:387-409
type Param struct {
	BaseExpr
	Paramkind   ParamKind // Parameter kind
	Paramid     int       // Parameter ID, as supplied by the client
	Paramtype   Oid       // Datatype OID
	Paramtypmod int32     // Type modifier
	Paramcollid Oid       // Collation OID
}

// NewParam creates a new Param node.
func NewParam(paramkind ParamKind, paramid int, paramtype Oid) *Param {
	return &Param{
		BaseExpr:  BaseExpr{BaseNode: BaseNode{Tag: T_Param}},
		Paramkind: paramkind,
		Paramid:   paramid,
		Paramtype: paramtype,
	}
}

func (p *Param) ExpressionType() string {
	return "Param"
}

func (p *Param) String() string {
	return fmt.Sprintf("Param($%d)@%d", p.Paramid, p.Location())
}

// ==============================================================================
// CALL AND OPERATOR EXPRESSIONS
// ==============================================================================

// FuncExpr represents a function call expression.
// Ported from postgres/src/include/nodes/primnodes.h:746-771
type FuncExpr struct {
	BaseExpr
	Funcid         Oid          // pg_proc OID
	Funcresulttype Oid          // Result type OID
	Funcretset     bool         // Returns set?
	Funcvariadic   bool         // Variadic arguments?
	Funcformat     CoercionForm // Display format: normal call, implicit cast, explicit cast
	Funccollid     Oid          // Result collation
	Inputcollid    Oid          // Input collation
	Args           []Node       // Function arguments
}

// NewFuncExpr creates a new FuncExpr node.
func NewFuncExpr(funcid Oid, funcresulttype Oid, args []Node) *FuncExpr {
	return &FuncExpr{
		BaseExpr:       BaseExpr{BaseNode: BaseNode{Tag: T_FuncExpr}},
		Funcid:         funcid,
		Funcresulttype: funcresulttype,
		Args:           args,
	}
}

func (f *FuncExpr) ExpressionType() string {
	return "FuncExpr"
}

func (f *FuncExpr) String() string {
	return fmt.Sprintf("FuncExpr(oid:%d, %d args)@%d", f.Funcid, len(f.Args), f.Location())
}

// OpExpr represents a binary or unary operator expression.
// Ported from postgres/src/include/nodes/primnodes.h:813-840
type OpExpr struct {
	BaseExpr
	Opno         Oid    // pg_operator OID
	Opfuncid     Oid    // Underlying function OID
	Opresulttype Oid    // Result type
	Opretset     bool   // Returns set?
	Opcollid     Oid    // Result collation
	Inputcollid  Oid    // Input collation
	Args         []Node // Operator arguments (1 or 2)
}

// NewOpExpr creates a new OpExpr node.
func NewOpExpr(opno Oid, opfuncid Oid, opresulttype Oid, args []Node) *OpExpr {
	return &OpExpr{
		BaseExpr:     BaseExpr{BaseNode: BaseNode{Tag: T_OpExpr}},
		Opno:         opno,
		Opfuncid:     opfuncid,
		Opresulttype: opresulttype,
		Args:         args,
	}
}

func (o *OpExpr) ExpressionType() string {
	return "OpExpr"
}

func (o *OpExpr) String() string {
	opType := "binary"
	if len(o.Args) == 1 {
		opType = "unary"
	}
	return fmt.Sprintf("OpExpr(%s, oid:%d)@%d", opType, o.Opno, o.Location())
}

// DistinctExpr represents an IS DISTINCT FROM comparison. It carries exactly
// the same fields as OpExpr (primnodes.h models it as an OpExpr subtype
// distinguished only by node tag) but is kept as a separate Go type so the
// walker and deparser can pattern-match it independently.
// Ported from postgres/src/include/nodes/primnodes.h:843-850
type DistinctExpr struct {
	BaseExpr
	Opno         Oid    // pg_operator OID of the underlying equality operator
	Opfuncid     Oid    // Underlying function OID
	Opresulttype Oid    // Result type (always boolean)
	Opretset     bool   // Returns set?
	Opcollid     Oid    // Result collation
	Inputcollid  Oid    // Input collation
	Args         []Node // Exactly 2 operands
}

// NewDistinctExpr creates a new DistinctExpr node.
func NewDistinctExpr(opno Oid, opfuncid Oid, args []Node) *DistinctExpr {
	return &DistinctExpr{
		BaseExpr: BaseExpr{BaseNode: BaseNode{Tag: T_DistinctExpr}},
		Opno:     opno,
		Opfuncid: opfuncid,
		Args:     args,
	}
}

func (d *DistinctExpr) ExpressionType() string {
	return "DistinctExpr"
}

func (d *DistinctExpr) String() string {
	return fmt.Sprintf("DistinctExpr(oid:%d)@%d", d.Opno, d.Location())
}

// ScalarArrayOpExpr represents a `scalar OP ANY/ALL (array)` expression.
// Ported from postgres/src/include/nodes/primnodes.h:893-920
type ScalarArrayOpExpr struct {
	BaseExpr
	Opno        Oid    // pg_operator OID
	Opfuncid    Oid    // Comparison function OID
	Hashfuncid  Oid    // Hash function OID (optimization)
	Negfuncid   Oid    // Negation function OID
	UseOr       bool   // True for ANY, false for ALL
	Inputcollid Oid    // Input collation
	Args        []Node // Scalar and array operands, in that order
}

// NewScalarArrayOpExpr creates a new ScalarArrayOpExpr node.
func NewScalarArrayOpExpr(opno Oid, useOr bool, scalar Node, array Node) *ScalarArrayOpExpr {
	return &ScalarArrayOpExpr{
		BaseExpr: BaseExpr{BaseNode: BaseNode{Tag: T_ScalarArrayOpExpr}},
		Opno:     opno,
		UseOr:    useOr,
		Args:     []Node{scalar, array},
	}
}

func (s *ScalarArrayOpExpr) ExpressionType() string {
	return "ScalarArrayOpExpr"
}

func (s *ScalarArrayOpExpr) String() string {
	opType := "ALL"
	if s.UseOr {
		opType = "ANY"
	}
	return fmt.Sprintf("ScalarArrayOpExpr(%s, oid:%d)@%d", opType, s.Opno, s.Location())
}

// NewAnyExpr creates a `scalar = ANY(array)` expression.
func NewAnyExpr(opno Oid, scalar Node, array Node) *ScalarArrayOpExpr {
	return NewScalarArrayOpExpr(opno, true, scalar, array)
}

// ==============================================================================
// BOOLEAN AND ARRAY-CONSTRUCTOR EXPRESSIONS
// ==============================================================================

// BoolExpr represents a boolean expression (AND/OR/NOT).
// Ported from postgres/src/include/nodes/primnodes.h:944-952
type BoolExpr struct {
	BaseExpr
	Boolop BoolExprType // AND/OR/NOT
	Args   []Node       // Operand expressions
}

// NewBoolExpr creates a new BoolExpr node.
func NewBoolExpr(boolop BoolExprType, args []Node) *BoolExpr {
	return &BoolExpr{
		BaseExpr: BaseExpr{BaseNode: BaseNode{Tag: T_BoolExpr}},
		Boolop:   boolop,
		Args:     args,
	}
}

func (b *BoolExpr) ExpressionType() string {
	return "BoolExpr"
}

func (b *BoolExpr) String() string {
	return fmt.Sprintf("BoolExpr(%s, %d args)@%d", b.Boolop, len(b.Args), b.Location())
}

// NewAndExpr creates a new AND boolean expression.
func NewAndExpr(left, right Node) *BoolExpr {
	return NewBoolExpr(AND_EXPR, []Node{left, right})
}

// NewNotExpr creates a new NOT boolean expression.
func NewNotExpr(arg Node) *BoolExpr {
	return NewBoolExpr(NOT_EXPR, []Node{arg})
}

// NewBinaryOp creates a binary operator expression.
func NewBinaryOp(opno Oid, left, right Node) *OpExpr {
	return NewOpExpr(opno, 0, 0, []Node{left, right})
}

// ArrayExpr represents an ARRAY[e1, e2, ...] constructor expression.
// Ported from postgres/src/include/nodes/primnodes.h:1370-1385
type ArrayExpr struct {
	BaseExpr
	ArrayTypeid   Oid    // Array type OID
	ArrayCollid   Oid    // Array collation
	ElementTypeid Oid    // Element type OID
	Elements      []Node // Array elements, possibly empty
	Multidims     bool   // Multi-dimensional?
}

// NewArrayExpr creates a new ArrayExpr node.
func NewArrayExpr(arrayTypeid Oid, elementTypeid Oid, elements []Node) *ArrayExpr {
	return &ArrayExpr{
		BaseExpr:      BaseExpr{BaseNode: BaseNode{Tag: T_ArrayExpr}},
		ArrayTypeid:   arrayTypeid,
		ElementTypeid: elementTypeid,
		Elements:      elements,
	}
}

// NewArrayConstructor creates an ARRAY[...] constructor.
func NewArrayConstructor(elements []Node) *ArrayExpr {
	return NewArrayExpr(0, 0, elements)
}

func (a *ArrayExpr) ExpressionType() string {
	return "ArrayExpr"
}

func (a *ArrayExpr) String() string {
	dims := "1D"
	if a.Multidims {
		dims = "Multi-D"
	}
	return fmt.Sprintf("ArrayExpr(%s, %d elements)@%d", dims, len(a.Elements), a.Location())
}
