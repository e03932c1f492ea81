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
	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func getProjectCmd() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Add, edit, list and delete projects",
		Long: `Project manages assets and their projects one at a time.

Adding a project writes the asset, its component scores and the project
in one transaction. A new project starts with the PLANNED status.

Examples:
  capexdb project add --code CD-2-001 --scope "Replace culvert" \
    --whs 8 --water 5 --customer 7 --maintenance 9 --financial 6
  capexdb project edit CD-2-001 --scope "Automate regulator"
  capexdb project list
  capexdb project delete 12`,
	}

	projectCmd.AddCommand(
		getProjectAddCmd(),
		getProjectEditCmd(),
		getProjectListCmd(),
		getProjectDeleteCmd(),
	)
	return projectCmd
}

// bindProjectFlags registers the fields of a project form on f.
func bindProjectFlags(f *pflag.FlagSet, in *capex.ProjectInput) {
	f.StringVar(&in.Scope, "scope", "", "project scope")
	f.StringVar(&in.AssetClass, "class", "", "asset class name")
	f.StringVar(&in.AssetType, "type", "", "asset type name")
	f.StringVar(&in.Description, "description", "", "asset description")
	f.StringVar(&in.DesignStatus, "design", "", "design status name")
	f.StringVar(&in.EnvStatus, "env", "", "environmental status name")
	f.StringVar(&in.Comment, "comment", "", "comment of the PLANNED status")
	f.Float64Var(&in.Scores.WHS, "whs", 0, "work health and safety score")
	f.Float64Var(&in.Scores.WaterSavings, "water", 0, "water savings score")
	f.Float64Var(&in.Scores.Customer, "customer", 0, "customer score")
	f.Float64Var(&in.Scores.Maintenance, "maintenance", 0, "maintenance/ops score")
	f.Float64Var(&in.Scores.Financial, "financial", 0, "financial score")
}

// mergeChanged copies into cur the fields of upd whose flags were set
// on the command line.
func mergeChanged(
	f *pflag.FlagSet,
	cur, upd capex.ProjectInput,
) capex.ProjectInput {
	for _, v := range []struct {
		flag string
		set  func()
	}{
		{"scope", func() { cur.Scope = upd.Scope }},
		{"class", func() { cur.AssetClass = upd.AssetClass }},
		{"type", func() { cur.AssetType = upd.AssetType }},
		{"description", func() { cur.Description = upd.Description }},
		{"design", func() { cur.DesignStatus = upd.DesignStatus }},
		{"env", func() { cur.EnvStatus = upd.EnvStatus }},
		{"comment", func() { cur.Comment = upd.Comment }},
		{"whs", func() { cur.Scores.WHS = upd.Scores.WHS }},
		{"water", func() { cur.Scores.WaterSavings = upd.Scores.WaterSavings }},
		{"customer", func() { cur.Scores.Customer = upd.Scores.Customer }},
		{"maintenance", func() { cur.Scores.Maintenance = upd.Scores.Maintenance }},
		{"financial", func() { cur.Scores.Financial = upd.Scores.Financial }},
	} {
		if f.Changed(v.flag) {
			v.set()
		}
	}
	return cur
}

func getProjectAddCmd() *cobra.Command {
	var (
		in        capex.ProjectInput
		overwrite bool
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project or replace it with --overwrite",
		Long: `Add writes an asset with its scores and project.

Asset class, asset type, design and environmental statuses are matched
by name ignoring case; unknown names are created. Negative scores are
stored as 0.

With --overwrite an existing asset is replaced by exactly the given
values, so omitted flags fall back to their defaults. Use
'capexdb project edit' to change only some fields.

Examples:
  capexdb project add --code CD-2-001 --scope "Replace culvert"
  capexdb project add --code CD-2-001 --scope "Replace culvert" \
    --class Regulators --whs 8 --overwrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjectAdd(cmd.Context(), in, overwrite)
		},
	}

	f := addCmd.Flags()
	f.StringVar(&in.AssetCode, "code", "", "asset code (required)")
	bindProjectFlags(f, &in)
	f.BoolVarP(&overwrite, "overwrite", "o", false,
		"replace the asset if the code exists")

	return addCmd
}

func runProjectAdd(ctx context.Context, in capex.ProjectInput, overwrite bool) error {
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	res, err := ioproject.New(op).Upsert(ctx, in, overwrite)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if res.Created {
		gn.Info("Created project <em>%d</em> for asset <em>%s</em>",
			res.ProjectID, in.AssetCode)
	} else {
		gn.Info("Updated project <em>%d</em> of asset <em>%s</em>",
			res.ProjectID, in.AssetCode)
	}
	return nil
}

func getProjectEditCmd() *cobra.Command {
	var upd capex.ProjectInput

	editCmd := &cobra.Command{
		Use:   "edit ASSET_CODE",
		Short: "Change some fields of an existing project",
		Long: `Edit loads the stored asset, scores and project, applies only the
flags given on the command line and saves the result. Fields without a
flag keep their current values. The cached total is reset to the flat
sum of the scores; run 'capexdb criteria recompute' for weighted ranks.

Examples:
  capexdb project edit CD-2-001 --scope "Automate regulator"
  capexdb project edit CD-2-001 --whs 9 --design "Concept design"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectEdit(cmd.Context(), cmd.Flags(), args[0], upd)
		},
	}

	bindProjectFlags(editCmd.Flags(), &upd)
	return editCmd
}

func runProjectEdit(
	ctx context.Context,
	f *pflag.FlagSet,
	code string,
	upd capex.ProjectInput,
) error {
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	u := ioproject.New(op)
	cur, err := u.Get(ctx, code)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	res, err := u.Upsert(ctx, mergeChanged(f, cur, upd), true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Updated project <em>%d</em> of asset <em>%s</em>",
		res.ProjectID, cur.AssetCode)
	return nil
}

func getProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects by priority rank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectList()
		},
	}
}

func runProjectList() error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	list, err := ioproject.New(op).List(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{
			formatRank(v.PriorityRank),
			formatUint(v.ProjectID),
			v.AssetCode,
			v.AssetClass,
			v.AssetType,
			v.Scope,
			v.DesignStatus,
			v.EnvStatus,
			formatFloat(v.TotalScore),
		})
	}
	printTable("Projects", []string{
		"Rank", "ID", "Asset", "Class", "Type", "Scope",
		"Design", "Environmental", "Score",
	}, rows)
	return nil
}

func getProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project with its costs, risks and status history",
		Long: `Delete removes a project together with its budget rows, risk
assessments and status history in one transaction. The asset and its
scores are kept.

Examples:
  capexdb project delete 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectDelete(args[0])
		},
	}
}

func runProjectDelete(arg string) error {
	id, err := parseID("project id", arg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = ioproject.New(op).DeleteProject(ctx, id); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Deleted project <em>%d</em>", id)
	return nil
}
