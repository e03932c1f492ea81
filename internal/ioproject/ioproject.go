// Package ioproject implements capex.Upserter. One call writes an asset,
// its priority score and its project in a single transaction.
package ioproject

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/odysseus-imc/capexdb/internal/ioref"
	"github.com/odysseus-imc/capexdb/internal/iostatus"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
	"gorm.io/gorm"
)

type upserter struct {
	operator db.Operator
	now      func() time.Time
}

// Option configures the upserter.
type Option func(*upserter)

// OptClock replaces time.Now for dating new projects.
func OptClock(now func() time.Time) Option {
	return func(u *upserter) {
		if now != nil {
			u.now = now
		}
	}
}

// New creates an Upserter.
func New(op db.Operator, opts ...Option) capex.Upserter {
	res := &upserter{operator: op, now: time.Now}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// resolved holds reference ids of one input.
type resolved struct {
	typeID, designID, envID uint
}

// Upsert creates an asset with score and project, or, with overwrite,
// updates an existing one in place. New scores always get the flat total.
func (u *upserter) Upsert(
	ctx context.Context,
	in capex.ProjectInput,
	overwrite bool,
) (capex.UpsertResult, error) {
	var res capex.UpsertResult

	gdb := u.operator.DB()
	if gdb == nil {
		return res, capex.StoreUnavailableError(errors.New("not connected"))
	}

	in, err := normalize(in)
	if err != nil {
		return res, err
	}

	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset schema.Asset
		err := tx.Where("code = ?", in.AssetCode).Limit(1).Find(&asset).Error
		if err != nil {
			return capex.PersistenceError("look up asset", err)
		}
		found := asset.ID != 0
		if found && !overwrite {
			return capex.DuplicateAssetError(in.AssetCode)
		}

		ids, err := resolve(tx, in)
		if err != nil {
			return err
		}

		if found {
			res, err = u.update(tx, asset, in, ids)
		} else {
			res, err = u.create(tx, in, ids)
		}
		return err
	})
	if err != nil {
		return capex.UpsertResult{}, err
	}

	slog.Debug("Project saved",
		"asset_code", in.AssetCode,
		"asset_id", res.AssetID,
		"project_id", res.ProjectID,
		"created", res.Created,
	)
	return res, nil
}

func normalize(in capex.ProjectInput) (capex.ProjectInput, error) {
	in = in.WithDefaults()
	in.AssetCode = strings.TrimSpace(in.AssetCode)
	in.Scope = strings.TrimSpace(in.Scope)
	if in.AssetCode == "" {
		return in, capex.ValidationError("asset_code", "value is required")
	}
	if in.Scope == "" {
		return in, capex.ValidationError("project_scope", "value is required")
	}

	for _, b := range scoring.Buckets {
		if v := in.Scores.Value(b); math.IsInf(v, 0) || math.IsNaN(v) {
			return in, capex.ValidationError(b.String(), "must be a finite number")
		}
	}

	var over []scoring.Bucket
	in.Scores, over = in.Scores.Clamp()
	for _, b := range over {
		slog.Warn("Score is above its usual maximum",
			"asset_code", in.AssetCode,
			"component", b.String(),
			"value", in.Scores.Value(b),
			"max", b.Max(),
		)
	}
	return in, nil
}

func resolve(tx *gorm.DB, in capex.ProjectInput) (resolved, error) {
	var res resolved
	classID, err := ioref.Resolve(tx, capex.AssetClass, in.AssetClass, 0)
	if err != nil {
		return res, err
	}
	if res.typeID, err = ioref.Resolve(tx, capex.AssetType, in.AssetType, classID); err != nil {
		return res, err
	}
	if res.designID, err = ioref.Resolve(tx, capex.DesignStatus, in.DesignStatus, 0); err != nil {
		return res, err
	}
	if res.envID, err = ioref.Resolve(tx, capex.EnvStatus, in.EnvStatus, 0); err != nil {
		return res, err
	}
	return res, nil
}

func (u *upserter) create(
	tx *gorm.DB,
	in capex.ProjectInput,
	ids resolved,
) (capex.UpsertResult, error) {
	asset := schema.Asset{
		Code:        in.AssetCode,
		AssetTypeID: ids.typeID,
		Description: in.Description,
	}
	if err := tx.Create(&asset).Error; err != nil {
		return capex.UpsertResult{}, capex.PersistenceError("create asset", err)
	}

	score := newScore(asset.ID, in.Scores)
	if err := tx.Create(&score).Error; err != nil {
		return capex.UpsertResult{}, capex.PersistenceError("create priority score", err)
	}

	projectID, err := u.createProject(tx, asset.ID, in, ids)
	if err != nil {
		return capex.UpsertResult{}, err
	}

	return capex.UpsertResult{
		AssetID:   asset.ID,
		ProjectID: projectID,
		Created:   true,
	}, nil
}

// update changes the asset, its score and its project in place, so cost
// and status rows of the project survive.
func (u *upserter) update(
	tx *gorm.DB,
	asset schema.Asset,
	in capex.ProjectInput,
	ids resolved,
) (capex.UpsertResult, error) {
	err := tx.Model(&asset).Updates(map[string]any{
		"description":   in.Description,
		"asset_type_id": ids.typeID,
	}).Error
	if err != nil {
		return capex.UpsertResult{}, capex.PersistenceError("update asset", err)
	}

	if err = saveScore(tx, asset.ID, in.Scores); err != nil {
		return capex.UpsertResult{}, err
	}

	var project schema.Project
	err = tx.Where("asset_id = ?", asset.ID).Order("id").Limit(1).Find(&project).Error
	if err != nil {
		return capex.UpsertResult{}, capex.PersistenceError("look up project", err)
	}

	if project.ID == 0 {
		projectID, err := u.createProject(tx, asset.ID, in, ids)
		if err != nil {
			return capex.UpsertResult{}, err
		}
		return capex.UpsertResult{AssetID: asset.ID, ProjectID: projectID}, nil
	}

	err = tx.Model(&project).Updates(map[string]any{
		"scope":            in.Scope,
		"design_status_id": ids.designID,
		"env_status_id":    ids.envID,
	}).Error
	if err != nil {
		return capex.UpsertResult{}, capex.PersistenceError("update project", err)
	}

	return capex.UpsertResult{AssetID: asset.ID, ProjectID: project.ID}, nil
}

// createProject inserts a project with its PLANNED status.
func (u *upserter) createProject(
	tx *gorm.DB,
	assetID uint,
	in capex.ProjectInput,
	ids resolved,
) (uint, error) {
	project := schema.Project{
		AssetID:        assetID,
		Scope:          in.Scope,
		DesignStatusID: ids.designID,
		EnvStatusID:    ids.envID,
	}
	if err := tx.Create(&project).Error; err != nil {
		return 0, capex.PersistenceError("create project", err)
	}

	plannedID, err := ioref.Resolve(tx, capex.ProjectStatus, schema.StatusPlanned, 0)
	if err != nil {
		return 0, err
	}
	_, err = iostatus.AppendTx(tx, project.ID, plannedID, u.now(), in.Comment)
	if err != nil {
		return 0, err
	}
	return project.ID, nil
}

func newScore(assetID uint, c scoring.Components) schema.PriorityScore {
	return schema.PriorityScore{
		AssetID:           assetID,
		WHSScore:          c.WHS,
		WaterSavingsScore: c.WaterSavings,
		CustomerScore:     c.Customer,
		MaintenanceScore:  c.Maintenance,
		FinancialScore:    c.Financial,
		TotalScore:        scoring.FlatTotal(c),
	}
}

func saveScore(tx *gorm.DB, assetID uint, c scoring.Components) error {
	var score schema.PriorityScore
	err := tx.Where("asset_id = ?", assetID).Limit(1).Find(&score).Error
	if err != nil {
		return capex.PersistenceError("look up priority score", err)
	}

	upd := newScore(assetID, c)
	if score.ID == 0 {
		if err = tx.Create(&upd).Error; err != nil {
			return capex.PersistenceError("create priority score", err)
		}
		return nil
	}

	err = tx.Model(&score).Updates(map[string]any{
		"whs_score":           upd.WHSScore,
		"water_savings_score": upd.WaterSavingsScore,
		"customer_score":      upd.CustomerScore,
		"maintenance_score":   upd.MaintenanceScore,
		"financial_score":     upd.FinancialScore,
		"total_score":         upd.TotalScore,
	}).Error
	if err != nil {
		return capex.PersistenceError("update priority score", err)
	}
	return nil
}

// DeleteProject removes a project with its budget, risk and status rows.
// The asset and its score are kept.
func (u *upserter) DeleteProject(ctx context.Context, projectID uint) error {
	gdb := u.operator.DB()
	if gdb == nil {
		return capex.StoreUnavailableError(errors.New("not connected"))
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&schema.Project{}).Where("id = ?", projectID).Count(&n).Error
		if err != nil {
			return capex.PersistenceError("look up project", err)
		}
		if n == 0 {
			return capex.NotFoundError("project", fmt.Sprint(projectID))
		}

		for _, m := range []any{
			&schema.ProjectYearCost{},
			&schema.ProjectStatusHistory{},
			&schema.RiskAssessment{},
		} {
			if err = tx.Where("project_id = ?", projectID).Delete(m).Error; err != nil {
				return capex.PersistenceError("delete project rows", err)
			}
		}

		if err = tx.Delete(&schema.Project{}, projectID).Error; err != nil {
			return capex.PersistenceError("delete project", err)
		}
		return nil
	})
}
