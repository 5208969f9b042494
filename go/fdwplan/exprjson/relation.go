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

package exprjson

import (
	"encoding/json"
	"fmt"

	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// Column is the wire shape of one plancontext.ColumnDescriptor.
type Column struct {
	AttNum      ast.AttrNumber `json:"attnum"`
	LocalName   string         `json:"local_name"`
	Dropped     bool           `json:"dropped,omitempty"`
	RemoteName  string         `json:"remote_name,omitempty"`
	HasOverride bool           `json:"has_override,omitempty"`
}

// Relation is the wire shape of one plancontext.ForeignRelation, the demo
// CLI's stand-in for the descriptor a real planner would assemble from
// pg_foreign_table/pg_attribute.
type Relation struct {
	RelOid            ast.Oid   `json:"rel_oid"`
	Varno             ast.Index `json:"varno"`
	LocalSchema       string    `json:"local_schema"`
	LocalTable        string    `json:"local_table"`
	RemoteSchema      string    `json:"remote_schema"`
	RemoteTable       string    `json:"remote_table"`
	UseRemoteEstimate bool      `json:"use_remote_estimate,omitempty"`
	Columns           []Column  `json:"columns"`
}

// DecodeRelation parses raw JSON into a *plancontext.ForeignRelation.
func DecodeRelation(raw []byte) (*plancontext.ForeignRelation, error) {
	var r Relation
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("exprjson: %w", err)
	}
	rel := &plancontext.ForeignRelation{
		RelOid:            r.RelOid,
		Varno:             r.Varno,
		LocalSchema:       r.LocalSchema,
		LocalTable:        r.LocalTable,
		RemoteSchema:      r.RemoteSchema,
		RemoteTable:       r.RemoteTable,
		UseRemoteEstimate: r.UseRemoteEstimate,
	}
	if rel.RemoteSchema == "" {
		rel.RemoteSchema = rel.LocalSchema
	}
	if rel.RemoteTable == "" {
		rel.RemoteTable = rel.LocalTable
	}
	for _, c := range r.Columns {
		remote := c.RemoteName
		if remote == "" {
			remote = c.LocalName
		}
		rel.Columns = append(rel.Columns, plancontext.ColumnDescriptor{
			AttNum:      c.AttNum,
			LocalName:   c.LocalName,
			Dropped:     c.Dropped,
			RemoteName:  remote,
			HasOverride: c.HasOverride,
		})
	}
	return rel, nil
}

// DecodeRestrictions parses a JSON array of expression nodes into
// plancontext.Restriction values.
func DecodeRestrictions(raw []byte, box Boxer) ([]plancontext.Restriction, error) {
	var nodes []Node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("exprjson: %w", err)
	}
	out := make([]plancontext.Restriction, len(nodes))
	for i := range nodes {
		expr, err := nodes[i].toAST(box)
		if err != nil {
			return nil, err
		}
		out[i] = plancontext.Restriction{Expr: expr}
	}
	return out, nil
}

// DecodeTargetList parses a JSON object ({"whole_row": bool, "attrs":
// [int,...]}) into a *plancontext.TargetList.
func DecodeTargetList(raw []byte) (*plancontext.TargetList, error) {
	var wire struct {
		WholeRow bool             `json:"whole_row,omitempty"`
		Attrs    []ast.AttrNumber `json:"attrs,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("exprjson: %w", err)
	}
	tl := &plancontext.TargetList{WholeRow: wire.WholeRow, Attrs: make(map[ast.AttrNumber]bool, len(wire.Attrs))}
	for _, a := range wire.Attrs {
		tl.Attrs[a] = true
	}
	return tl, nil
}
