package ioreport

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
)

// programCell is the budget of an asset class in one financial year.
type programCell struct {
	AssetClass    string
	FinancialYear string
	Amount        float64
}

// Program sums project costs by asset class and financial year.
func (r *reporter) Program(
	ctx context.Context,
	from string,
	years int,
) (capex.Program, error) {
	gdb := r.operator.DB()
	if gdb == nil {
		return capex.Program{}, capex.StoreUnavailableError(errors.New("not connected"))
	}

	var cells []programCell
	err := gdb.WithContext(ctx).
		Table("project_year_costs pyc").
		Select(`ac.name AS asset_class, pyc.financial_year,
			SUM(pyc.project_cost) AS amount`).
		Joins("JOIN projects p ON p.id = pyc.project_id").
		Joins("JOIN assets a ON a.id = p.asset_id").
		Joins("JOIN asset_types typ ON typ.id = a.asset_type_id").
		Joins("JOIN asset_classes ac ON ac.id = typ.asset_class_id").
		Group("ac.name, pyc.financial_year").
		Scan(&cells).Error
	if err != nil {
		return capex.Program{}, capex.PersistenceError("sum program budget", err)
	}
	return pivot(cells, from, years), nil
}

// pivot lays cells out as asset classes by financial years. Years sort
// by their label, which orders "FY 24-25" style tokens chronologically.
// Classes with no cost inside the window are left out.
func pivot(cells []programCell, from string, years int) capex.Program {
	from = strings.Join(strings.Fields(from), " ")

	var all []string
	for _, v := range cells {
		if v.FinancialYear >= from && !slices.Contains(all, v.FinancialYear) {
			all = append(all, v.FinancialYear)
		}
	}
	slices.Sort(all)
	if years > 0 && len(all) > years {
		all = all[:years]
	}

	res := capex.Program{
		Years:      all,
		YearTotals: make([]float64, len(all)),
	}
	rows := make(map[string]*capex.ProgramRow)
	for _, v := range cells {
		col := slices.Index(all, v.FinancialYear)
		if col < 0 {
			continue
		}
		row, ok := rows[v.AssetClass]
		if !ok {
			row = &capex.ProgramRow{
				AssetClass: v.AssetClass,
				Amounts:    make([]float64, len(all)),
			}
			rows[v.AssetClass] = row
		}
		row.Amounts[col] += v.Amount
		row.Total += v.Amount
		res.YearTotals[col] += v.Amount
		res.Total += v.Amount
	}

	for _, v := range rows {
		res.Rows = append(res.Rows, *v)
	}
	slices.SortFunc(res.Rows, func(a, b capex.ProgramRow) int {
		return strings.Compare(a.AssetClass, b.AssetClass)
	})
	return res
}
