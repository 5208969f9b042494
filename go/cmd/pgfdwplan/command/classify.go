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

package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/classify"
	"github.com/multigres/pgfdwplan/go/fdwplan/deparse"
	"github.com/multigres/pgfdwplan/go/fdwplan/exprjson"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

type classifyReport struct {
	RemoteConds []string `json:"remote_conds"`
	ParamConds  []string `json:"param_conds"`
	LocalConds  []string `json:"local_conds"`
	ParamIDs    []int    `json:"param_ids"`
}

// AddClassifyCommand attaches the classify subcommand to root.
func AddClassifyCommand(root *cobra.Command, pc *PlanCommand) {
	var relationPath, restrictionsPath string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Partition a relation's restriction clauses into remote/param/local buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := loadRelation(relationPath)
			if err != nil {
				return err
			}
			restrictions, err := loadRestrictions(restrictionsPath, pc.oracle)
			if err != nil {
				return err
			}

			result, err := classify.Conditions(restrictions, rel, pc.oracle)
			if err != nil {
				return fmt.Errorf("classify: %w", err)
			}

			report := classifyReport{ParamIDs: result.ParamIDs}
			if report.RemoteConds, err = renderAll(result.RemoteConds, rel, pc.oracle); err != nil {
				return err
			}
			if report.ParamConds, err = renderAll(result.ParamConds, rel, pc.oracle); err != nil {
				return err
			}
			if report.LocalConds, err = renderAll(result.LocalConds, rel, pc.oracle); err != nil {
				return err
			}

			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&relationPath, "relation", "", "path to a relation descriptor JSON file (required)")
	cmd.Flags().StringVar(&restrictionsPath, "restrictions", "", "path to a JSON array of restriction expression nodes (required)")
	_ = cmd.MarkFlagRequired("relation")
	_ = cmd.MarkFlagRequired("restrictions")

	root.AddCommand(cmd)
}

func renderAll(restrictions []plancontext.Restriction, rel *plancontext.ForeignRelation, oracle catalog.Oracle) ([]string, error) {
	out := make([]string, len(restrictions))
	for i, r := range restrictions {
		buf := sqlwriter.New()
		if err := deparse.Expr(buf, r.Expr, rel, oracle); err != nil {
			return nil, fmt.Errorf("deparsing classified clause: %w", err)
		}
		out[i] = buf.String()
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func loadRelation(path string) (*plancontext.ForeignRelation, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return exprjson.DecodeRelation(raw)
}

func loadRestrictions(path string, oracle *catalog.PQOracle) ([]plancontext.Restriction, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return exprjson.DecodeRestrictions(raw, func(text string) ast.Datum { return oracle.Box(text) })
}
