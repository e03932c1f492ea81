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
	"strings"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/ioref"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/spf13/cobra"
)

// categories maps command line names to reference categories.
var categories = map[string]capex.Category{
	"class":   capex.AssetClass,
	"type":    capex.AssetType,
	"design":  capex.DesignStatus,
	"env":     capex.EnvStatus,
	"project": capex.ProjectStatus,
}

const categoryNames = "class, type, design, env, project"

func parseCategory(s string) (capex.Category, error) {
	cat, ok := categories[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", capex.ValidationError("category", "expected one of "+categoryNames)
	}
	return cat, nil
}

func getRefCmd() *cobra.Command {
	refCmd := &cobra.Command{
		Use:   "ref",
		Short: "List, add, rename and delete reference data",
		Long: `Ref manages reference tables: asset classes (class), asset types
(type), design statuses (design), environmental statuses (env) and
project statuses (project).

Names are matched ignoring case and stay unique the same way. A
reference that is still used cannot be deleted.

Examples:
  capexdb ref list class
  capexdb ref add type "Box Culvert" --class "Bridges & Culverts"
  capexdb ref rename class 3 "Outlets & Offtakes"
  capexdb ref delete design 7`,
	}

	refCmd.AddCommand(
		getRefListCmd(),
		getRefAddCmd(),
		getRefRenameCmd(),
		getRefDeleteCmd(),
	)
	return refCmd
}

func withResolver(f func(context.Context, capex.Resolver) error) error {
	ctx := context.Background()
	op, err := openStore(ctx, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = f(ctx, ioref.New(op)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func getRefListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list CATEGORY",
		Short: "List references of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withResolver(func(ctx context.Context, r capex.Resolver) error {
				list, err := r.List(ctx, cat)
				if err != nil {
					return err
				}
				headers := []string{"ID", "Name"}
				if cat == capex.AssetType {
					headers = append(headers, "Class ID")
				}
				rows := make([][]string, 0, len(list))
				for _, v := range list {
					row := []string{formatUint(v.ID), v.Name}
					if cat == capex.AssetType {
						row = append(row, formatUint(v.ParentID))
					}
					rows = append(rows, row)
				}
				printTable(strings.ToUpper(string(cat)[:1])+string(cat)[1:], headers, rows)
				return nil
			})
		},
	}
}

func getRefAddCmd() *cobra.Command {
	var class string

	addCmd := &cobra.Command{
		Use:   "add CATEGORY NAME",
		Short: "Add a reference or show the existing one",
		Long: `Add returns the id of a reference, creating it when no reference
of that name exists. Asset types belong to an asset class given by
--class (default "Bridges & Culverts").`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withResolver(func(ctx context.Context, r capex.Resolver) error {
				var parentID uint
				if cat == capex.AssetType {
					if parentID, err = r.ResolveOrCreate(ctx, capex.AssetClass, class, 0); err != nil {
						return err
					}
				}
				id, err := r.ResolveOrCreate(ctx, cat, args[1], parentID)
				if err != nil {
					return err
				}
				gn.Info("%s <em>%s</em> has id <em>%d</em>", cat, args[1], id)
				return nil
			})
		},
	}

	addCmd.Flags().StringVar(&class, "class", capex.DefaultAssetClass,
		"asset class of a new asset type")
	return addCmd
}

func getRefRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename CATEGORY ID NAME",
		Short: "Rename a reference",
		Long: `Rename changes the name of a reference. It fails when another
reference of the category already has that name ignoring case. Asset
type names only need to be unique inside their asset class. Project
status codes cannot be renamed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			id, err := parseID("id", args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withResolver(func(ctx context.Context, r capex.Resolver) error {
				if err := r.Rename(ctx, cat, id, args[2]); err != nil {
					return err
				}
				gn.Info("Renamed %s <em>%d</em> to <em>%s</em>", cat, id, args[2])
				return nil
			})
		},
	}
}

func getRefDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CATEGORY ID",
		Short: "Delete a reference nothing uses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			id, err := parseID("id", args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withResolver(func(ctx context.Context, r capex.Resolver) error {
				if err := r.Delete(ctx, cat, id); err != nil {
					return err
				}
				gn.Info("Deleted %s <em>%d</em>", cat, id)
				return nil
			})
		},
	}
}
