package collation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/multigres/pgfdwplan/go/parser/ast"
)

func TestTagString(t *testing.T) {
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "Safe", Safe.String())
	assert.Equal(t, "Unsafe", Unsafe.String())
}

func TestMergeHigherChildOverwritesParent(t *testing.T) {
	parent := State{Tag: None, Collation: ast.InvalidOid}
	child := State{Tag: Safe, Collation: 12345}
	assert.Equal(t, child, Merge(parent, child))
}

func TestMergeLowerChildIsNoop(t *testing.T) {
	parent := State{Tag: Safe, Collation: 12345}
	child := State{Tag: None, Collation: ast.InvalidOid}
	assert.Equal(t, parent, Merge(parent, child))
}

func TestMergeSafeSameCollationIsNoop(t *testing.T) {
	parent := State{Tag: Safe, Collation: 12345}
	child := State{Tag: Safe, Collation: 12345}
	assert.Equal(t, parent, Merge(parent, child))
}

func TestMergeSafeDefaultCollationYieldsNonDefault(t *testing.T) {
	parent := State{Tag: Safe, Collation: ast.DefaultCollationOid}
	child := State{Tag: Safe, Collation: 12345}
	got := Merge(parent, child)
	assert.Equal(t, Safe, got.Tag)
	assert.Equal(t, ast.Oid(12345), got.Collation)
}

func TestMergeSafeTwoNonDefaultUnequalPromotesUnsafe(t *testing.T) {
	parent := State{Tag: Safe, Collation: 111}
	child := State{Tag: Safe, Collation: 222}
	got := Merge(parent, child)
	assert.Equal(t, Unsafe, got.Tag)
}

func TestMergeUnsafeIsAbsorbing(t *testing.T) {
	parent := State{Tag: Unsafe, Collation: ast.InvalidOid}
	child := State{Tag: Unsafe, Collation: ast.InvalidOid}
	assert.Equal(t, parent, Merge(parent, child))
}

func TestFinalTagInvalidDeclaredCollationIsNone(t *testing.T) {
	got := FinalTag(ast.InvalidOid, State{Tag: Safe, Collation: 100})
	assert.Equal(t, None, got.Tag)
}

func TestFinalTagSafeWhenInnerMatchesDeclared(t *testing.T) {
	got := FinalTag(100, State{Tag: Safe, Collation: 100})
	assert.Equal(t, Safe, got.Tag)
	assert.Equal(t, ast.Oid(100), got.Collation)
}

func TestFinalTagUnsafeOtherwise(t *testing.T) {
	got := FinalTag(100, State{Tag: Safe, Collation: 200})
	assert.Equal(t, Unsafe, got.Tag)

	got = FinalTag(100, State{Tag: None, Collation: ast.InvalidOid})
	assert.Equal(t, Unsafe, got.Tag)
}
