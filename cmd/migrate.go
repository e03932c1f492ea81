/*
Copyright © 2025 The capexdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iodb"
	"github.com/odysseus-imc/capexdb/internal/ioschema"
	"github.com/spf13/cobra"
)

func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring an existing schema to the current version",
		Long: `Migrate runs GORM AutoMigrate against an existing database and
then fills reference tables that are still empty.

GORM AutoMigrate adds missing tables, columns and indexes. It does
NOT delete columns or tables, so it is safe to run on a database
with live planning data. Run it after upgrading capexdb.

Examples:
  capexdb migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	op, err := openStore(ctx, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()
	gn.Info("Connected to database: <em>%s</em>", storeLabel())

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !hasTables {
		gn.PrintErrorMessage(iodb.EmptyDatabaseError())
		return nil
	}

	sm := ioschema.NewManager(op)
	gn.Info("Migrating schema to latest version...")
	if err = sm.Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	n, err := sm.Seed(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if n > 0 {
		gn.Info("Added <em>%d</em> reference rows", n)
	}
	gn.Info("Schema is now up to date.")
	return nil
}
