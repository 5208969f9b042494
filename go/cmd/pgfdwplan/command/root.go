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

// Package command wires the pgfdwplan CLI: a root command carrying the
// shared database connection and catalog oracle, plus classify/deparse/scan
// subcommands that consume plancontext/expression descriptors from files.
package command

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/config"
)

// PlanCommand holds the state shared across pgfdwplan's subcommands: the
// live catalog connection and the per-server settings it was opened with.
type PlanCommand struct {
	db     *sql.DB
	oracle *catalog.PQOracle
	cfg    config.ServerConfig
	log    *slog.Logger

	dsn        string
	configFile string
	serverName string
}

// GetRootCommand builds the pgfdwplan root command and attaches every
// subcommand.
func GetRootCommand() *cobra.Command {
	pc := &PlanCommand{log: slog.Default()}

	root := &cobra.Command{
		Use:   "pgfdwplan",
		Short: "Inspect FDW query-pushdown planning decisions against a live Postgres catalog",
		Long: `pgfdwplan drives the FDW query-pushdown planner core from the command line:
classify restriction clauses into remote/param/local buckets, deparse a
single expression to remote SQL, or assemble the scan and ANALYZE
statements a foreign-data wrapper would send to its remote server.

The catalog metadata (namespaces, operators, functions, casts) is read
live from the Postgres instance named by --dsn, so results reflect that
server's actual pg_catalog rather than a scripted fixture.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return pc.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if pc.db != nil {
				return pc.db.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&pc.dsn, "dsn", "", "Postgres connection string for the remote catalog (required)")
	root.PersistentFlags().StringVar(&pc.configFile, "config", "", "path to a YAML/JSON config file with a servers.<name> block")
	root.PersistentFlags().StringVar(&pc.serverName, "server", "default", "server name used to look up servers.<name> config overrides")
	_ = root.MarkPersistentFlagRequired("dsn")

	AddClassifyCommand(root, pc)
	AddDeparseCommand(root, pc)
	AddScanCommand(root, pc)

	return root
}

func (pc *PlanCommand) setup() error {
	v := viper.New()
	if pc.configFile != "" {
		v.SetConfigFile(pc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg, err := config.Load(v, pc.serverName)
	if err != nil {
		return err
	}
	pc.cfg = cfg

	db, err := sql.Open("postgres", pc.dsn)
	if err != nil {
		return fmt.Errorf("opening database connection: %w", err)
	}
	pc.db = db
	pc.oracle = catalog.NewPQOracle(db, cfg.BuiltinCutoff, pc.log)
	return nil
}
