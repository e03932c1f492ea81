package ioproject

import (
	"context"
	"errors"

	"github.com/odysseus-imc/capexdb/pkg/capex"
)

type summaryRow struct {
	ProjectID    uint
	AssetCode    string
	AssetClass   string
	AssetType    string
	Scope        string
	DesignStatus string
	EnvStatus    string
	TotalScore   *float64
	PriorityRank *int
}

// List returns all projects ordered by rank. Unranked projects come last,
// ordered by id.
func (u *upserter) List(ctx context.Context) ([]capex.ProjectSummary, error) {
	gdb := u.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}

	var rows []summaryRow
	err := gdb.WithContext(ctx).
		Table("projects p").
		Select(`p.id AS project_id, a.code AS asset_code,
			ac.name AS asset_class, typ.name AS asset_type, p.scope,
			ds.name AS design_status, es.name AS env_status,
			ps.total_score, p.priority_rank`).
		Joins("JOIN assets a ON a.id = p.asset_id").
		Joins("JOIN asset_types typ ON typ.id = a.asset_type_id").
		Joins("JOIN asset_classes ac ON ac.id = typ.asset_class_id").
		Joins("JOIN design_statuses ds ON ds.id = p.design_status_id").
		Joins("JOIN env_statuses es ON es.id = p.env_status_id").
		Joins("LEFT JOIN priority_scores ps ON ps.asset_id = a.id").
		Order("p.priority_rank IS NULL, p.priority_rank, p.id").
		Scan(&rows).Error
	if err != nil {
		return nil, capex.PersistenceError("list projects", err)
	}

	res := make([]capex.ProjectSummary, len(rows))
	for i, v := range rows {
		res[i] = capex.ProjectSummary{
			ProjectID:    v.ProjectID,
			AssetCode:    v.AssetCode,
			AssetClass:   v.AssetClass,
			AssetType:    v.AssetType,
			Scope:        v.Scope,
			DesignStatus: v.DesignStatus,
			EnvStatus:    v.EnvStatus,
			PriorityRank: v.PriorityRank,
		}
		if v.TotalScore != nil {
			res[i].TotalScore = *v.TotalScore
		}
	}
	return res, nil
}
