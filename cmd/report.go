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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/ioreport"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/spf13/cobra"
)

func getReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show the portfolio dashboard",
		Long: `Report prints portfolio aggregates: number of projects, total
budget, active and completed projects, projects per asset class, budget
per financial year, current status distribution and the criteria weight
sum.

Active projects are those whose current status is IN_PROGRESS or DESIGN.

Examples:
  capexdb report
  capexdb report program --years 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport()
		},
	}

	reportCmd.AddCommand(getReportProgramCmd())
	return reportCmd
}

func getReportProgramCmd() *cobra.Command {
	var (
		from  string
		years int
	)

	programCmd := &cobra.Command{
		Use:   "program",
		Short: "Show budgets by asset class and financial year",
		Long: `Program pivots project budgets into a table of asset classes by
financial years. The window starts at --from (the earliest budgeted year
by default) and spans --years financial years. Use --years 0 to show
every year.

Examples:
  capexdb report program
  capexdb report program --years 10
  capexdb report program --from "FY 26-27" --years 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(from, years)
		},
	}

	programCmd.Flags().StringVar(&from, "from", "",
		"first financial year, e.g. \"FY 25-26\"")
	programCmd.Flags().IntVarP(&years, "years", "y", 3,
		"number of financial years (1, 3, 10; 0 for all)")
	return programCmd
}

func runProgram(from string, years int) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	p, err := ioreport.New(op).Program(ctx, from, years)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(p.Years) == 0 {
		gn.Info("No budgets in the selected financial years")
		return nil
	}
	headers, rows := programRows(p)
	printTable("Capital program", headers, rows)
	return nil
}

// programRows formats the pivot with a total column and a total row.
func programRows(p capex.Program) ([]string, [][]string) {
	headers := append([]string{"Asset class"}, p.Years...)
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(p.Rows)+1)
	line := func(label string, amounts []float64, total float64) {
		row := make([]string, 0, len(amounts)+2)
		row = append(row, label)
		for _, v := range amounts {
			row = append(row, formatMoney(v))
		}
		rows = append(rows, append(row, formatMoney(total)))
	}
	for _, v := range p.Rows {
		line(v.AssetClass, v.Amounts, v.Total)
	}
	line("Total", p.YearTotals, p.Total)
	return headers, rows
}

func runReport() error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	d, err := ioreport.New(op).Dashboard(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printDashboard(d)
	return nil
}

func printDashboard(d capex.Dashboard) {
	printTable("Portfolio", []string{"Measure", "Value"}, [][]string{
		{"Projects", humanize.Comma(d.TotalProjects)},
		{"Total budget", formatMoney(d.TotalBudget)},
		{"Active projects", humanize.Comma(int64(d.ActiveProjects))},
		{"Completed projects", humanize.Comma(int64(d.CompletedProjects))},
	})

	fmt.Println()
	printTable("Projects by asset class", []string{"Asset class", "Projects"},
		countRows(d.ByAssetClass))

	fmt.Println()
	budget := make([][]string, 0, len(d.BudgetByYear))
	for _, v := range d.BudgetByYear {
		budget = append(budget, []string{v.Label, formatMoney(v.Amount)})
	}
	printTable("Budget by financial year", []string{"Financial year", "Budget"}, budget)

	fmt.Println()
	printTable("Current status", []string{"Status", "Projects"},
		countRows(d.StatusCounts))

	fmt.Println()
	printWeights(d.Weights)
}

func countRows(counts []capex.Count) [][]string {
	res := make([][]string, 0, len(counts))
	for _, v := range counts {
		res = append(res, []string{v.Label, humanize.Comma(v.Count)})
	}
	return res
}
