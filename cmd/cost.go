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
	"strconv"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iocost"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/spf13/cobra"
)

func getCostCmd() *cobra.Command {
	costCmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage multi-year project budgets",
		Long: `Cost keeps one budget row per project and financial year:
the project cost, the customer contribution and a summary.

Financial years are free labels such as "FY 24-25". Setting a year that
already has a row replaces it.

Examples:
  capexdb cost set 12 "FY 24-25" 150000 --contribution 20000
  capexdb cost list 12
  capexdb cost delete 12 "FY 24-25"`,
	}

	costCmd.AddCommand(
		getCostSetCmd(),
		getCostListCmd(),
		getCostDeleteCmd(),
	)
	return costCmd
}

func withBudget(f func(context.Context, capex.Budget) error) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = f(ctx, iocost.New(op)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func getCostSetCmd() *cobra.Command {
	var (
		contribution float64
		summary      string
	)

	setCmd := &cobra.Command{
		Use:   "set PROJECT_ID FINANCIAL_YEAR COST",
		Short: "Add or replace the budget of a financial year",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				err = capex.ValidationError("project cost", "must be a number")
				gn.PrintErrorMessage(err)
				return err
			}
			yc := capex.YearCost{
				ProjectID:            id,
				FinancialYear:        args[1],
				ProjectCost:          amount,
				CustomerContribution: contribution,
				Summary:              summary,
			}
			return withBudget(func(ctx context.Context, b capex.Budget) error {
				if err := b.Set(ctx, yc); err != nil {
					return err
				}
				gn.Info("Budget of project <em>%d</em> for <em>%s</em> saved",
					id, yc.FinancialYear)
				return nil
			})
		},
	}

	setCmd.Flags().Float64VarP(&contribution, "contribution", "c", 0,
		"customer contribution")
	setCmd.Flags().StringVarP(&summary, "summary", "s", "",
		"summary of the work planned for the year")
	return setCmd
}

func getCostListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List budget rows of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withBudget(func(ctx context.Context, b capex.Budget) error {
				list, err := b.List(ctx, id)
				if err != nil {
					return err
				}
				var cost, contrib float64
				rows := make([][]string, 0, len(list)+1)
				for _, v := range list {
					cost += v.ProjectCost
					contrib += v.CustomerContribution
					rows = append(rows, []string{
						v.FinancialYear,
						formatMoney(v.ProjectCost),
						formatMoney(v.CustomerContribution),
						v.Summary,
					})
				}
				if len(rows) > 0 {
					rows = append(rows, []string{
						"Total", formatMoney(cost), formatMoney(contrib), "",
					})
				}
				printTable("Budget", []string{
					"Financial year", "Project cost", "Contribution", "Summary",
				}, rows)
				return nil
			})
		},
	}
}

func getCostDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT_ID FINANCIAL_YEAR",
		Short: "Delete the budget of a financial year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withBudget(func(ctx context.Context, b capex.Budget) error {
				if err := b.Delete(ctx, id, args[1]); err != nil {
					return err
				}
				gn.Info("Budget of project <em>%d</em> for <em>%s</em> deleted",
					id, args[1])
				return nil
			})
		},
	}
}
