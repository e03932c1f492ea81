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
	"github.com/odysseus-imc/capexdb/internal/iorisk"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/risk"
	"github.com/spf13/cobra"
)

func getRiskCmd() *cobra.Command {
	riskCmd := &cobra.Command{
		Use:   "risk",
		Short: "Rate project risk by consequence and likelihood",
		Long: `Risk keeps the risk assessments of projects. A rating is derived
from the consequence score (1-5) plus the likelihood score (1-6):

  2-3 Low, 4-6 Moderate, 7-9 High, 10-11 Extreme

Every assessment is kept; the latest one is the current rating.

Consequences: L, M, H, VH, C
Likelihoods:  R, U, O, L, HL, AC

Examples:
  capexdb risk assess 12 VH L
  capexdb risk assess 12 "Very High" Likely
  capexdb risk list 12
  capexdb risk matrix`,
	}

	riskCmd.AddCommand(
		getRiskAssessCmd(),
		getRiskListCmd(),
		getRiskMatrixCmd(),
	)
	return riskCmd
}

func withRater(f func(context.Context, capex.RiskRater) error) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = f(ctx, iorisk.New(op)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func getRiskAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess PROJECT_ID CONSEQUENCE LIKELIHOOD",
		Short: "Add a risk assessment to a project",
		Long: `Assess rates a project. Consequence and likelihood are given by
code or by description, ignoring case.

Examples:
  capexdb risk assess 12 VH L`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withRater(func(ctx context.Context, r capex.RiskRater) error {
				a, err := r.Assess(ctx, id, args[1], args[2])
				if err != nil {
					return err
				}
				gn.Info("Project <em>%d</em>: %s x %s", id, a.Consequence, a.Likelihood)
				gn.Info("Risk rating: %s", formatRisk(a.Rating))
				return nil
			})
		},
	}
}

func getRiskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List risk assessments of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withRater(func(ctx context.Context, r capex.RiskRater) error {
				list, err := r.List(ctx, id)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(list))
				for i, v := range list {
					current := ""
					if i == len(list)-1 {
						current = "*"
					}
					rows = append(rows, []string{
						formatUint(v.ID),
						v.CreatedAt.Format("2006-01-02 15:04"),
						v.Consequence,
						v.Likelihood,
						formatRisk(v.Rating),
						current,
					})
				}
				printTable("Risk assessments", []string{
					"ID", "Created", "Consequence", "Likelihood", "Rating", "Current",
				}, rows)
				return nil
			})
		},
	}
}

func getRiskMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Show the risk matrix reference table",
		Long: `Matrix prints the descriptive likelihood by consequence table
planners consult. Stored ratings come from the score sum.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printTable("Risk matrix", matrixHeader(), matrixRows())
			return nil
		},
	}
}

func matrixHeader() []string {
	return append([]string{"Likelihood"}, risk.ConsequenceLabels...)
}

func matrixRows() [][]string {
	rows := make([][]string, 0, len(risk.LikelihoodLabels))
	for i, l := range risk.LikelihoodLabels {
		row := []string{l}
		for _, r := range risk.Matrix[i] {
			row = append(row, formatRisk(r))
		}
		rows = append(rows, row)
	}
	return rows
}
