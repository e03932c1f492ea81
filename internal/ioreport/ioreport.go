// Package ioreport implements capex.Reporter: the portfolio dashboard and
// the multi-year capital program. Status aggregates use the same
// current-status rule as the tracker.
package ioreport

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/odysseus-imc/capexdb/internal/ioscore"
	"github.com/odysseus-imc/capexdb/internal/iostatus"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/status"
	"gorm.io/gorm"
)

// Active statuses count as projects in progress.
var Active = []string{schema.StatusInProgress, schema.StatusDesign}

type reporter struct {
	operator db.Operator
}

// New creates a Reporter.
func New(op db.Operator) capex.Reporter {
	return &reporter{operator: op}
}

// Dashboard reads all aggregates from one transaction snapshot.
func (r *reporter) Dashboard(ctx context.Context) (capex.Dashboard, error) {
	var res capex.Dashboard
	gdb := r.operator.DB()
	if gdb == nil {
		return res, capex.StoreUnavailableError(errors.New("not connected"))
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		err = tx.Model(&schema.Project{}).Count(&res.TotalProjects).Error
		if err != nil {
			return capex.PersistenceError("count projects", err)
		}

		if res.TotalBudget, err = totalBudget(tx); err != nil {
			return err
		}
		if res.ByAssetClass, err = byAssetClass(tx); err != nil {
			return err
		}
		if res.BudgetByYear, err = budgetByYear(tx); err != nil {
			return err
		}

		current, err := iostatus.CurrentAll(tx)
		if err != nil {
			return err
		}
		counts := status.CountByCode(current)
		for _, v := range Active {
			res.ActiveProjects += counts[v]
		}
		res.CompletedProjects = counts[schema.StatusCompleted]
		res.StatusCounts = sortCounts(counts)

		res.Weights, err = ioscore.WeightStatus(tx)
		return err
	})
	if err != nil {
		return capex.Dashboard{}, err
	}
	return res, nil
}

func totalBudget(tx *gorm.DB) (float64, error) {
	var res float64
	err := tx.Model(&schema.ProjectYearCost{}).
		Select("COALESCE(SUM(project_cost), 0)").
		Row().Scan(&res)
	if err != nil {
		return 0, capex.PersistenceError("sum budget", err)
	}
	return res, nil
}

func byAssetClass(tx *gorm.DB) ([]capex.Count, error) {
	var res []capex.Count
	err := tx.Table("projects p").
		Select("ac.name AS label, COUNT(p.id) AS count").
		Joins("JOIN assets a ON a.id = p.asset_id").
		Joins("JOIN asset_types typ ON typ.id = a.asset_type_id").
		Joins("JOIN asset_classes ac ON ac.id = typ.asset_class_id").
		Group("ac.name").
		Order("count DESC, ac.name").
		Scan(&res).Error
	if err != nil {
		return nil, capex.PersistenceError("count projects by asset class", err)
	}
	return res, nil
}

// budgetByYear orders years by their token.
func budgetByYear(tx *gorm.DB) ([]capex.Amount, error) {
	var res []capex.Amount
	err := tx.Model(&schema.ProjectYearCost{}).
		Select("financial_year AS label, SUM(project_cost) AS amount").
		Group("financial_year").
		Order("financial_year").
		Scan(&res).Error
	if err != nil {
		return nil, capex.PersistenceError("sum budget by year", err)
	}
	return res, nil
}

func sortCounts(counts map[string]int) []capex.Count {
	res := make([]capex.Count, 0, len(counts))
	for k, v := range counts {
		res = append(res, capex.Count{Label: k, Count: int64(v)})
	}
	slices.SortFunc(res, func(a, b capex.Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return res
}
