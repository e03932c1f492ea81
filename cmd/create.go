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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/ioschema"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/spf13/cobra"
)

var errAborted = errors.New("aborted by user")

func getCreateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the CAPEX planning database schema from scratch.

If the store (SQLite file or PostgreSQL) already has tables, create
prompts for confirmation and drops them before building the schema
with GORM AutoMigrate. Afterwards it loads the reference data:
statuses, criteria, risk lookups and asset classes.

Use --force to skip the question.

Examples:
  capexdb create
  capexdb create --force
  capexdb create -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd.Context(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"drop existing tables without confirmation")
	return cmd
}

func runCreate(ctx context.Context, force bool) error {
	op, err := openStore(ctx, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()
	gn.Info("Connected to database: <em>%s</em>", storeLabel())

	err = dropExisting(ctx, op, force)
	if errors.Is(err, errAborted) {
		gn.Info("Aborted. No changes made.")
		return nil
	}
	if err == nil {
		gn.Info("Creating schema using GORM AutoMigrate...")
		err = ioschema.NewManager(op).Create(ctx)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("\nDatabase schema creation complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run <em>'capexdb import --template plan.csv'</em> for a CSV template")
	gn.Info("  - Run <em>'capexdb import plan.csv'</em> to load projects")
	return nil
}

// dropExisting empties a non-empty store, asking first unless force
// is set.
func dropExisting(ctx context.Context, op db.Operator, force bool) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil || !hasTables {
		return err
	}

	if force {
		gn.Info("Dropping all existing tables (--force enabled)...")
	} else {
		gn.Warn("\nDatabase contains tables. Creating the schema " +
			"drops ALL of them together with their data.")
		ok, err := confirm(os.Stdin, "\nDo you want to continue? (yes/no): ")
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}
	return op.DropAllTables(ctx)
}

// confirm prints prompt and reports whether the answer read from r
// is "y" or "yes".
func confirm(r io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
