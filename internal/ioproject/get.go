package ioproject

import (
	"context"
	"errors"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
)

type inputRow struct {
	AssetCode    string
	AssetClass   string
	AssetType    string
	Description  string
	Scope        *string
	DesignStatus *string
	EnvStatus    *string
	WHS          *float64
	Water        *float64
	Customer     *float64
	Maintenance  *float64
	Financial    *float64
}

// Get returns the stored values of an asset and its first project in
// the shape Upsert accepts, so an edit can change a few fields and write
// the rest back unchanged.
func (u *upserter) Get(ctx context.Context, assetCode string) (capex.ProjectInput, error) {
	var res capex.ProjectInput
	gdb := u.operator.DB()
	if gdb == nil {
		return res, capex.StoreUnavailableError(errors.New("not connected"))
	}
	assetCode = strings.TrimSpace(assetCode)

	var rows []inputRow
	err := gdb.WithContext(ctx).
		Table("assets a").
		Select(`a.code AS asset_code, ac.name AS asset_class,
			typ.name AS asset_type, a.description, p.scope,
			ds.name AS design_status, es.name AS env_status,
			ps.whs_score AS whs, ps.water_savings_score AS water,
			ps.customer_score AS customer,
			ps.maintenance_score AS maintenance,
			ps.financial_score AS financial`).
		Joins("JOIN asset_types typ ON typ.id = a.asset_type_id").
		Joins("JOIN asset_classes ac ON ac.id = typ.asset_class_id").
		Joins("LEFT JOIN priority_scores ps ON ps.asset_id = a.id").
		Joins("LEFT JOIN projects p ON p.asset_id = a.id").
		Joins("LEFT JOIN design_statuses ds ON ds.id = p.design_status_id").
		Joins("LEFT JOIN env_statuses es ON es.id = p.env_status_id").
		Where("a.code = ?", assetCode).
		Order("p.id").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return res, capex.PersistenceError("look up asset", err)
	}
	if len(rows) == 0 {
		return res, capex.NotFoundError("asset", assetCode)
	}

	v := rows[0]
	res = capex.ProjectInput{
		AssetCode:    v.AssetCode,
		AssetClass:   v.AssetClass,
		AssetType:    v.AssetType,
		Description:  v.Description,
		Scope:        deref(v.Scope),
		DesignStatus: deref(v.DesignStatus),
		EnvStatus:    deref(v.EnvStatus),
		Scores: scoring.Components{
			WHS:          deref(v.WHS),
			WaterSavings: deref(v.Water),
			Customer:     deref(v.Customer),
			Maintenance:  deref(v.Maintenance),
			Financial:    deref(v.Financial),
		},
	}
	return res, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
