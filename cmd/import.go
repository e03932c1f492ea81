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
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iofs"
	"github.com/odysseus-imc/capexdb/internal/ioimport"
	"github.com/odysseus-imc/capexdb/internal/ioscore"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/spf13/cobra"
)

// maxShownErrors limits row errors printed to the console. The log file
// keeps all of them.
const maxShownErrors = 20

func getImportCmd() *cobra.Command {
	var (
		overwrite bool
		quiet     bool
		rank      bool
		template  string
	)

	importCmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import assets and projects from a CSV file",
		Long: `Import reads a CSV spreadsheet and writes every row through the
upsert engine: the asset, its component scores and its project.

Required columns:
  asset_code, project_scope

Optional columns (blank cells get defaults):
  asset_class, asset_type, description, design_status, env_status,
  whs_score, water_score, customer_score, maintenance_score,
  financial_score

Column names are case-insensitive. Each row is saved on its own: a bad
row is reported as "Row N: message" and the import continues. Rows with
an existing asset code fail unless --overwrite is given.

Use --template to write a sample file to start from.

Examples:
  capexdb import --template plan.csv
  capexdb import plan.csv
  capexdb import plan.csv --overwrite --rank
  capexdb import plan.csv -q`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if template != "" {
				return runTemplate(template)
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runImport(args[0], overwrite, quiet, rank)
		},
	}

	importCmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"replace assets that already exist")
	importCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"do not show the progress bar")
	importCmd.Flags().BoolVarP(&rank, "rank", "r", false,
		"recompute weighted totals and ranks after import")
	importCmd.Flags().StringVarP(&template, "template", "t", "",
		"write a sample CSV file to the given path and exit")

	return importCmd
}

func runTemplate(path string) error {
	if err := iofs.WriteTemplate(path); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Template written to <em>%s</em>", path)
	return nil
}

func runImport(path string, overwrite, quiet, rank bool) error {
	ctx := context.Background()

	changes := []config.Option{config.OptImportOverwrite(overwrite)}
	if quiet {
		noProgress := false
		changes = append(changes, config.OptImportShowProgress(&noProgress))
	}
	cfg.Update(changes)

	tbl, err := ioimport.ReadCSVFile(path)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Importing <em>%s</em> rows from <em>%s</em>",
		humanize.Comma(int64(tbl.Len())), path)

	imp := ioimport.New(op, cfg)
	res, err := imp.Import(ctx, filepath.Base(path), tbl, cfg.Import.Overwrite)

	for i, rowErr := range res.Errors {
		if i == maxShownErrors {
			gn.Warn("... and <em>%d</em> more, see the log file",
				len(res.Errors)-maxShownErrors)
			break
		}
		gn.Warn("%s", rowErr.String())
	}

	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Imported <em>%s</em> of <em>%s</em> rows (run %s)",
		humanize.Comma(int64(res.Imported)),
		humanize.Comma(int64(res.Rows)),
		res.RunID,
	)

	if !rank || res.Imported == 0 {
		return nil
	}

	rec, err := ioscore.New(op, cfg).Recompute(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Ranked <em>%d</em> projects", rec.Projects)
	return nil
}
