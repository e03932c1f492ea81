// Package iocost implements capex.Budget, the multi-year cost plan of
// projects. A project has at most one row per financial year. Years are
// free tokens such as "FY 24-25"; inner whitespace is collapsed.
package iocost

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type budget struct {
	operator db.Operator
}

// New creates a Budget.
func New(op db.Operator) capex.Budget {
	return &budget{operator: op}
}

func (b *budget) db(ctx context.Context) (*gorm.DB, error) {
	gdb := b.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}
	return gdb.WithContext(ctx), nil
}

// Set creates or replaces the cost of a project for a financial year.
func (b *budget) Set(ctx context.Context, yc capex.YearCost) error {
	yc.FinancialYear = strings.Join(strings.Fields(yc.FinancialYear), " ")
	if yc.FinancialYear == "" {
		return capex.ValidationError("financial year", "value is required")
	}
	if yc.ProjectCost < 0 || yc.CustomerContribution < 0 {
		return capex.ValidationError("cost", "amounts cannot be negative")
	}

	gdb, err := b.db(ctx)
	if err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&schema.Project{}).Where("id = ?", yc.ProjectID).Count(&n).Error
		if err != nil {
			return capex.PersistenceError("look up project", err)
		}
		if n == 0 {
			return capex.NotFoundError("project", fmt.Sprint(yc.ProjectID))
		}

		row := schema.ProjectYearCost{
			ProjectID:            yc.ProjectID,
			FinancialYear:        yc.FinancialYear,
			ProjectCost:          yc.ProjectCost,
			CustomerContribution: yc.CustomerContribution,
			Summary:              yc.Summary,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "financial_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"project_cost", "customer_contribution", "summary",
			}),
		}).Create(&row).Error
		if err != nil {
			return capex.PersistenceError("save project cost", err)
		}
		return nil
	})
}

// Delete removes the cost of a project for a financial year.
func (b *budget) Delete(
	ctx context.Context,
	projectID uint,
	fy string,
) error {
	gdb, err := b.db(ctx)
	if err != nil {
		return err
	}
	fy = strings.Join(strings.Fields(fy), " ")
	q := gdb.Where("project_id = ? AND financial_year = ?", projectID, fy).
		Delete(&schema.ProjectYearCost{})
	if q.Error != nil {
		return capex.PersistenceError("delete project cost", q.Error)
	}
	if q.RowsAffected == 0 {
		return capex.NotFoundError("cost of project",
			fmt.Sprintf("%d for %s", projectID, fy))
	}
	return nil
}

// List returns costs of a project ordered by financial year.
func (b *budget) List(
	ctx context.Context,
	projectID uint,
) ([]capex.YearCost, error) {
	gdb, err := b.db(ctx)
	if err != nil {
		return nil, err
	}
	var rows []schema.ProjectYearCost
	err = gdb.Where("project_id = ?", projectID).
		Order("financial_year").
		Find(&rows).Error
	if err != nil {
		return nil, capex.PersistenceError("read project costs", err)
	}
	res := make([]capex.YearCost, len(rows))
	for i, v := range rows {
		res[i] = capex.YearCost{
			ProjectID:            v.ProjectID,
			FinancialYear:        v.FinancialYear,
			ProjectCost:          v.ProjectCost,
			CustomerContribution: v.CustomerContribution,
			Summary:              v.Summary,
		}
	}
	return res, nil
}
