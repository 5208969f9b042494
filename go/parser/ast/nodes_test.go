package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTagString(t *testing.T) {
	tests := []struct {
		tag      NodeTag
		expected string
	}{
		{T_Invalid, "T_Invalid"},
		{T_Var, "T_Var"},
		{T_ScalarArrayOpExpr, "T_ScalarArrayOpExpr"},
		{T_SubscriptingRef, "T_SubscriptingRef"},
		{NodeTag(999), "NodeTag(999)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.tag.String())
	}
}

func TestNodeList(t *testing.T) {
	v1 := NewVar(1, 1, INT4OID)
	v2 := NewVar(1, 2, TEXTOID)

	list := NewNodeList(v1, v2)
	require.Len(t, list.Items, 2)
	assert.Equal(t, T_List, list.NodeTag())
	assert.Contains(t, list.String(), "List[2 items]")
}

func TestWalkNodesVisitsListItems(t *testing.T) {
	v1 := NewVar(1, 1, INT4OID)
	v2 := NewVar(1, 2, INT4OID)
	list := NewNodeList(v1, v2)

	var visited []Node
	WalkNodes(list, func(n Node) bool {
		visited = append(visited, n)
		return true
	})

	require.Len(t, visited, 3) // the list itself plus both vars
	assert.Same(t, list, visited[0])
}

func TestFindNodes(t *testing.T) {
	v1 := NewVar(1, 1, INT4OID)
	c1 := NewConst(INT4OID, 0, false)
	list := NewNodeList(v1, c1)

	found := FindNodes(list, T_Var)
	require.Len(t, found, 1)
	assert.Same(t, v1, found[0])
}

func TestFindNodesRecursesIntoRealExpressionTree(t *testing.T) {
	v1 := NewVar(1, 1, INT4OID)
	v2 := NewVar(1, 2, INT4OID)
	and := NewAndExpr(
		NewBinaryOp(0, v1, NewConst(INT4OID, 1, false)),
		NewNotExpr(NewIsNullTest(v2)),
	)

	found := FindNodes(and, T_Var)
	require.Len(t, found, 2)
	assert.Same(t, v1, found[0])
	assert.Same(t, v2, found[1])
}
