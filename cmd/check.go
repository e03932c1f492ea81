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
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/odysseus-imc/capexdb/internal/iomaint"
	"github.com/spf13/cobra"
)

// getCheckCmd returns the check command.
func getCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Remove orphaned rows and refresh database statistics",
		Long: `Check keeps the planning database consistent.

This command:
  1. Removes priority scores whose asset no longer exists
  2. Removes budget, risk and status rows whose project no longer exists
  3. Refreshes query planner statistics (ANALYZE)

It is safe to run at any time.

Examples:
  capexdb check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}

func runCheck() error {
	ctx := context.Background()
	timeStart := time.Now()

	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", storeLabel())

	res, err := iomaint.New(op).Check(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	tables := make([]string, 0, len(res.Orphans))
	for k := range res.Orphans {
		tables = append(tables, k)
	}
	slices.Sort(tables)

	rows := make([][]string, 0, len(tables))
	for _, k := range tables {
		rows = append(rows, []string{k, humanize.Comma(res.Orphans[k])})
	}
	printTable("Removed orphans", []string{"Table", "Rows"}, rows)

	gn.Info("Check finished in %s, removed <em>%d</em> rows",
		gnfmt.TimeString(time.Since(timeStart).Seconds()), res.Total())
	return nil
}
