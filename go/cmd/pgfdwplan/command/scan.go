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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/multigres/pgfdwplan/go/fdwplan/classify"
	"github.com/multigres/pgfdwplan/go/fdwplan/exprjson"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/fdwplan/stmt"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// AddScanCommand attaches the scan subcommand to root.
func AddScanCommand(root *cobra.Command, pc *PlanCommand) {
	var (
		relationPath     string
		targetListPath   string
		restrictionsPath string
		mode             string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Assemble the scan or ANALYZE SQL a foreign-data wrapper would send remotely",
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := loadRelation(relationPath)
			if err != nil {
				return err
			}

			buf := sqlwriter.New()

			switch mode {
			case "analyze-size":
				stmt.AnalyzeSizeSQL(buf, rel, pc.cfg.BlockSizeBytes, pc.oracle)
			case "analyze-sample":
				stmt.AnalyzeSampleSQL(buf, rel)
			case "select":
				targetList, err := loadTargetList(targetListPath)
				if err != nil {
					return err
				}

				var localExprs []ast.Node
				var remoteConds []plancontext.Restriction
				if restrictionsPath != "" {
					restrictions, err := loadRestrictions(restrictionsPath, pc.oracle)
					if err != nil {
						return err
					}
					result, err := classify.Conditions(restrictions, rel, pc.oracle)
					if err != nil {
						return fmt.Errorf("classify: %w", err)
					}
					remoteConds = append(remoteConds, result.RemoteConds...)
					remoteConds = append(remoteConds, result.ParamConds...)
					for _, r := range result.LocalConds {
						localExprs = append(localExprs, r.Expr)
					}
				}

				if err := stmt.SimpleScanSelect(buf, rel, targetList, localExprs, pc.oracle); err != nil {
					return fmt.Errorf("building scan SELECT: %w", err)
				}

				if len(remoteConds) > 0 {
					exprs := make([]ast.Node, len(remoteConds))
					for i, r := range remoteConds {
						exprs[i] = r.Expr
					}
					if err := stmt.AppendWhereClause(buf, true, exprs, rel, pc.oracle); err != nil {
						return fmt.Errorf("appending WHERE clause: %w", err)
					}
				}
			default:
				return fmt.Errorf("unknown --mode %q, want select|analyze-size|analyze-sample", mode)
			}

			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&relationPath, "relation", "", "path to a relation descriptor JSON file (required)")
	cmd.Flags().StringVar(&targetListPath, "targetlist", "", "path to a target-list JSON file (used with --mode select)")
	cmd.Flags().StringVar(&restrictionsPath, "restrictions", "", "path to a JSON array of restriction expression nodes (optional, used with --mode select)")
	cmd.Flags().StringVar(&mode, "mode", "select", "one of select|analyze-size|analyze-sample")
	_ = cmd.MarkFlagRequired("relation")

	root.AddCommand(cmd)
}

func loadTargetList(path string) (*plancontext.TargetList, error) {
	if path == "" {
		return &plancontext.TargetList{WholeRow: true}, nil
	}
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return exprjson.DecodeTargetList(raw)
}
