// Package ast provides PostgreSQL AST node definitions and interfaces.
// Ported from postgres/src/include/nodes/nodes.h and related header files.
package ast

import (
	"fmt"
)

// NodeTag represents the type of an AST node.
// Ported from postgres/src/include/nodes/nodes.h:26-31 (NodeTag enum)
type NodeTag int

// NodeTag constants for the closed set of node kinds a restriction-clause
// expression tree can be built from. Statement, DDL and range-table node
// kinds are intentionally absent: only expression subtrees ever reach the
// safety walker and deparser.
const (
	T_Invalid NodeTag = iota // Ported from postgres/src/include/nodes/nodes.h:28

	T_Node
	T_List

	// Expression nodes - primnodes.h
	T_Expr
	T_Var
	T_Const
	T_Param
	T_FuncExpr
	T_OpExpr
	T_DistinctExpr
	T_ScalarArrayOpExpr
	T_BoolExpr
	T_RelabelType
	T_SubscriptingRef
	T_NullTest
	T_ArrayExpr
)

// String returns the string representation of a NodeTag.
// Used for debugging and error reporting.
func (nt NodeTag) String() string {
	switch nt {
	case T_Invalid:
		return "T_Invalid"
	case T_Node:
		return "T_Node"
	case T_List:
		return "T_List"
	case T_Expr:
		return "T_Expr"
	case T_Var:
		return "T_Var"
	case T_Const:
		return "T_Const"
	case T_Param:
		return "T_Param"
	case T_FuncExpr:
		return "T_FuncExpr"
	case T_OpExpr:
		return "T_OpExpr"
	case T_DistinctExpr:
		return "T_DistinctExpr"
	case T_ScalarArrayOpExpr:
		return "T_ScalarArrayOpExpr"
	case T_BoolExpr:
		return "T_BoolExpr"
	case T_RelabelType:
		return "T_RelabelType"
	case T_SubscriptingRef:
		return "T_SubscriptingRef"
	case T_NullTest:
		return "T_NullTest"
	case T_ArrayExpr:
		return "T_ArrayExpr"
	default:
		return fmt.Sprintf("NodeTag(%d)", int(nt))
	}
}

// Node is the base interface for all PostgreSQL AST nodes.
// Every node in the expression tree implements this interface.
// Ported from postgres/src/include/nodes/nodes.h:17-19 (base node concept)
type Node interface {
	// NodeTag returns the type tag for this node
	NodeTag() NodeTag

	// Location returns the byte offset in the source string where this node begins.
	// Nodes built by this package's constructors leave it at 0.
	Location() int

	// String returns a string representation of the node (for debugging)
	String() string
}

// BaseNode provides a basic implementation of the Node interface.
// Other node types should embed this to get default implementations.
type BaseNode struct {
	Tag NodeTag // Node type tag - ported from postgres/src/include/nodes/nodes.h:18
	Loc int     // Source location in bytes
}

// NodeTag returns the node's type tag.
func (n *BaseNode) NodeTag() NodeTag {
	return n.Tag
}

// Location returns the node's source location.
func (n *BaseNode) Location() int {
	return n.Loc
}

// String returns a basic string representation.
func (n *BaseNode) String() string {
	return fmt.Sprintf("%s@%d", n.Tag, n.Loc)
}

// NodeList represents a heterogeneous ordered sequence of sub-nodes, used to
// recurse into argument vectors. Ported from postgres List structure concept.
type NodeList struct {
	BaseNode
	Items []Node // List of nodes
}

// NewNodeList creates a new node list.
func NewNodeList(items ...Node) *NodeList {
	return &NodeList{
		BaseNode: BaseNode{Tag: T_List},
		Items:    items,
	}
}

// String returns a string representation of the list.
func (l *NodeList) String() string {
	return fmt.Sprintf("List[%d items]@%d", len(l.Items), l.Location())
}

// Expression represents the base interface for all SQL expressions.
// All expressions in WHERE clauses implement this.
type Expression interface {
	Node
	ExpressionType() string
}

// NodeWalker is a function type for walking the AST.
// It receives a node and returns whether to continue walking.
type NodeWalker func(Node) bool

// WalkNodes recursively walks all nodes in a tree, calling the walker function.
// Covers exactly the closed node set the restriction-clause expression tree
// can be built from (see the NodeTag const block); Var, Const and Param are
// leaves.
func WalkNodes(node Node, walker NodeWalker) {
	if node == nil || !walker(node) {
		return
	}

	switch n := node.(type) {
	case *NodeList:
		for _, item := range n.Items {
			WalkNodes(item, walker)
		}
	case *FuncExpr:
		for _, a := range n.Args {
			WalkNodes(a, walker)
		}
	case *OpExpr:
		for _, a := range n.Args {
			WalkNodes(a, walker)
		}
	case *DistinctExpr:
		for _, a := range n.Args {
			WalkNodes(a, walker)
		}
	case *ScalarArrayOpExpr:
		for _, a := range n.Args {
			WalkNodes(a, walker)
		}
	case *SubscriptingRef:
		for _, e := range n.Refupperindexpr {
			WalkNodes(e, walker)
		}
		for _, e := range n.Reflowerindexpr {
			WalkNodes(e, walker)
		}
		WalkNodes(n.Refexpr, walker)
	case *RelabelType:
		WalkNodes(n.Arg, walker)
	case *BoolExpr:
		for _, a := range n.Args {
			WalkNodes(a, walker)
		}
	case *NullTest:
		WalkNodes(n.Arg, walker)
	case *ArrayExpr:
		for _, e := range n.Elements {
			WalkNodes(e, walker)
		}
	}
}

// FindNodes finds all nodes of a specific type in a tree.
func FindNodes(root Node, targetTag NodeTag) []Node {
	var found []Node
	WalkNodes(root, func(node Node) bool {
		if node.NodeTag() == targetTag {
			found = append(found, node)
		}
		return true
	})
	return found
}
