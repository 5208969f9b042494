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

package plancontext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

func testRelation() *plancontext.ForeignRelation {
	return &plancontext.ForeignRelation{
		RelOid:       16400,
		Varno:        1,
		LocalSchema:  "public",
		LocalTable:   "ft1",
		RemoteSchema: "s1",
		RemoteTable:  "t1",
		Columns: []plancontext.ColumnDescriptor{
			{AttNum: 1, LocalName: "c1", RemoteName: "C 1", HasOverride: true},
			{AttNum: 2, LocalName: "c2", RemoteName: "c2"},
			{AttNum: 3, LocalName: "c3", Dropped: true, RemoteName: "c3"},
		},
	}
}

func TestQualifiedRemoteNameQuotesOnlyWhereNeeded(t *testing.T) {
	rel := testRelation()
	got := rel.QualifiedRemoteName()
	assert.Equal(t, `s1.t1`, got)
}

func TestColumnByAttNumFindsExistingColumn(t *testing.T) {
	rel := testRelation()
	col, ok := rel.ColumnByAttNum(2)
	assert.True(t, ok)
	assert.Equal(t, "c2", col.LocalName)
}

func TestColumnByAttNumMissingReturnsFalse(t *testing.T) {
	rel := testRelation()
	_, ok := rel.ColumnByAttNum(99)
	assert.False(t, ok)
}

func TestMaxAttNumIncludesDroppedColumns(t *testing.T) {
	rel := testRelation()
	assert.Equal(t, ast.AttrNumber(3), rel.MaxAttNum())
}

func TestMaxAttNumOfEmptyRelationIsZero(t *testing.T) {
	rel := &plancontext.ForeignRelation{}
	assert.Equal(t, ast.AttrNumber(0), rel.MaxAttNum())
}

func TestTargetListReferencesWholeRowAlwaysTrue(t *testing.T) {
	tl := &plancontext.TargetList{WholeRow: true}
	assert.True(t, tl.References(1))
	assert.True(t, tl.References(99))
}

func TestTargetListReferencesOnlyListedAttrs(t *testing.T) {
	tl := &plancontext.TargetList{Attrs: map[ast.AttrNumber]bool{2: true}}
	assert.False(t, tl.References(1))
	assert.True(t, tl.References(2))
}

func TestNilTargetListReferencesNothing(t *testing.T) {
	var tl *plancontext.TargetList
	assert.False(t, tl.References(1))
}
