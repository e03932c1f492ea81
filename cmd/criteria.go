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
	"strconv"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/ioscore"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
	"github.com/spf13/cobra"
)

func getCriteriaCmd() *cobra.Command {
	criteriaCmd := &cobra.Command{
		Use:   "criteria",
		Short: "Manage weighted ranking criteria and recompute ranks",
		Long: `Criteria are the weighted dimensions of the priority ranking.
Their weights are expected to add up to 100%.

Every change of a criterion rewrites all total scores with the new
weights and ranks all projects again, in the same transaction.

Examples:
  capexdb criteria list
  capexdb criteria add Community 10 --definition "Benefit to community"
  capexdb criteria edit 3 --weight 25
  capexdb criteria delete 6
  capexdb criteria recompute`,
	}

	criteriaCmd.AddCommand(
		getCriteriaListCmd(),
		getCriteriaAddCmd(),
		getCriteriaEditCmd(),
		getCriteriaDeleteCmd(),
		getCriteriaRecomputeCmd(),
	)
	return criteriaCmd
}

// withScorer opens the store and runs f with a scorer.
func withScorer(f func(context.Context, capex.Scorer) error) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = f(ctx, ioscore.New(op, cfg)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func getCriteriaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List criteria with their weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withScorer(runCriteriaList)
		},
	}
}

func runCriteriaList(ctx context.Context, s capex.Scorer) error {
	list, err := s.Criteria(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{
			formatUint(v.ID),
			v.Name,
			formatFloat(v.WeightPct) + "%",
			v.Definition,
		})
	}
	printTable("Criteria", []string{"ID", "Name", "Weight", "Definition"}, rows)

	ws, err := s.WeightStatus(ctx)
	if err != nil {
		return err
	}
	printWeights(ws)
	return nil
}

func printWeights(ws scoring.WeightStatus) {
	if ws.Balanced() {
		gn.Info("%s", ws.String())
		return
	}
	gn.Warn("%s", ws.String())
}

func printRecompute(res capex.RecomputeResult) {
	gn.Info("Recomputed <em>%d</em> scores, ranked <em>%d</em> projects",
		res.Scores, res.Projects)
}

func getCriteriaAddCmd() *cobra.Command {
	var definition string

	addCmd := &cobra.Command{
		Use:   "add NAME WEIGHT",
		Short: "Add a criterion and recompute ranks",
		Long: `Add creates a criterion. WEIGHT is a percentage from 0 to 100.
Names must be unique.

Examples:
  capexdb criteria add Community 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := parseWeight(args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			c := capex.Criterion{
				Name:       args[0],
				WeightPct:  weight,
				Definition: definition,
			}
			return withScorer(func(ctx context.Context, s capex.Scorer) error {
				added, res, err := s.AddCriterion(ctx, c)
				if err != nil {
					return err
				}
				gn.Info("Added criterion <em>%s</em> (id %d)", added.Name, added.ID)
				printRecompute(res)
				ws, err := s.WeightStatus(ctx)
				if err != nil {
					return err
				}
				printWeights(ws)
				return nil
			})
		},
	}

	addCmd.Flags().StringVarP(&definition, "definition", "d", "",
		"what the criterion measures")
	return addCmd
}

func getCriteriaEditCmd() *cobra.Command {
	var (
		name       string
		weight     float64
		definition string
	)

	editCmd := &cobra.Command{
		Use:   "edit CRITERION_ID",
		Short: "Change a criterion and recompute ranks",
		Long: `Edit changes the name, weight or definition of a criterion.
Fields without a flag keep their values.

Examples:
  capexdb criteria edit 3 --weight 25
  capexdb criteria edit 3 --name "Customer Impact"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("criterion id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			flags := cmd.Flags()
			return withScorer(func(ctx context.Context, s capex.Scorer) error {
				c, err := findCriterion(ctx, s, id)
				if err != nil {
					return err
				}
				if flags.Changed("name") {
					c.Name = name
				}
				if flags.Changed("weight") {
					c.WeightPct = weight
				}
				if flags.Changed("definition") {
					c.Definition = definition
				}
				res, err := s.UpdateCriterion(ctx, c)
				if err != nil {
					return err
				}
				gn.Info("Updated criterion <em>%s</em>", c.Name)
				printRecompute(res)
				ws, err := s.WeightStatus(ctx)
				if err != nil {
					return err
				}
				printWeights(ws)
				return nil
			})
		},
	}

	f := editCmd.Flags()
	f.StringVarP(&name, "name", "n", "", "new name")
	f.Float64VarP(&weight, "weight", "w", 0, "new weight in percent")
	f.StringVarP(&definition, "definition", "d", "", "new definition")
	return editCmd
}

func findCriterion(
	ctx context.Context,
	s capex.Scorer,
	id uint,
) (capex.Criterion, error) {
	list, err := s.Criteria(ctx)
	if err != nil {
		return capex.Criterion{}, err
	}
	for _, v := range list {
		if v.ID == id {
			return v, nil
		}
	}
	return capex.Criterion{}, capex.NotFoundError("criterion", fmt.Sprint(id))
}

func getCriteriaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CRITERION_ID",
		Short: "Delete a criterion and recompute ranks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("criterion id", args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withScorer(func(ctx context.Context, s capex.Scorer) error {
				res, err := s.DeleteCriterion(ctx, id)
				if err != nil {
					return err
				}
				gn.Info("Deleted criterion <em>%d</em>", id)
				printRecompute(res)
				ws, err := s.WeightStatus(ctx)
				if err != nil {
					return err
				}
				printWeights(ws)
				return nil
			})
		},
	}
}

func getCriteriaRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Recompute weighted totals and rank all projects",
		Long: `Recompute rewrites every total score as the sum of component
scores times their criterion weight, then ranks projects by total.
Projects without scores are ranked last.

Examples:
  capexdb criteria recompute`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withScorer(func(ctx context.Context, s capex.Scorer) error {
				res, err := s.Recompute(ctx)
				if err != nil {
					return err
				}
				printRecompute(res)
				return nil
			})
		},
	}
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, capex.ValidationError("weight", "must be a number")
	}
	return w, nil
}
