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

	"github.com/multigres/pgfdwplan/go/fdwplan/deparse"
	"github.com/multigres/pgfdwplan/go/fdwplan/exprjson"
	"github.com/multigres/pgfdwplan/go/fdwplan/sqlwriter"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// AddDeparseCommand attaches the deparse subcommand to root.
func AddDeparseCommand(root *cobra.Command, pc *PlanCommand) {
	var relationPath, exprPath string

	cmd := &cobra.Command{
		Use:   "deparse",
		Short: "Render a single expression node as remote SQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := loadRelation(relationPath)
			if err != nil {
				return err
			}

			raw, err := readFile(exprPath)
			if err != nil {
				return err
			}
			node, err := exprjson.Decode(raw, func(text string) ast.Datum { return pc.oracle.Box(text) })
			if err != nil {
				return err
			}

			buf := sqlwriter.New()
			if err := deparse.Expr(buf, node, rel, pc.oracle); err != nil {
				return fmt.Errorf("deparse: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&relationPath, "relation", "", "path to a relation descriptor JSON file (required)")
	cmd.Flags().StringVar(&exprPath, "expr", "", "path to an expression node JSON file (required)")
	_ = cmd.MarkFlagRequired("relation")
	_ = cmd.MarkFlagRequired("expr")

	root.AddCommand(cmd)
}
