// Package iorisk implements capex.RiskRater. Every assessment is a new
// row; the latest row of a project is its current rating.
package iorisk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/risk"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/gorm"
)

type rater struct {
	operator db.Operator
}

// New creates a RiskRater.
func New(op db.Operator) capex.RiskRater {
	return &rater{operator: op}
}

func (r *rater) db(ctx context.Context) (*gorm.DB, error) {
	gdb := r.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}
	return gdb.WithContext(ctx), nil
}

// Assess rates a project. Consequence and likelihood are given by code
// or description, for example "VH" or "Very High".
func (r *rater) Assess(
	ctx context.Context,
	projectID uint,
	consequenceCode, likelihoodCode string,
) (capex.Assessment, error) {
	gdb, err := r.db(ctx)
	if err != nil {
		return capex.Assessment{}, err
	}

	var row schema.RiskAssessment
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := projectExists(tx, projectID); err != nil {
			return err
		}
		var c schema.Consequence
		if err := lookup(tx, &c, "consequence", consequenceCode); err != nil {
			return err
		}
		var l schema.Likelihood
		if err := lookup(tx, &l, "likelihood", likelihoodCode); err != nil {
			return err
		}
		rating, err := risk.Compute(c.Score, l.Score)
		if err != nil {
			return capex.ValidationError("risk scores", err.Error())
		}

		row = schema.RiskAssessment{
			ProjectID:     projectID,
			ConsequenceID: c.ID,
			Consequence:   &c,
			LikelihoodID:  l.ID,
			Likelihood:    &l,
			RiskRating:    string(rating),
		}
		if err = tx.Omit("Consequence", "Likelihood", "Project").
			Create(&row).Error; err != nil {
			return capex.PersistenceError("save risk assessment", err)
		}
		return nil
	})
	if err != nil {
		return capex.Assessment{}, err
	}
	return toAssessment(row), nil
}

// Current returns the latest assessment of a project.
func (r *rater) Current(
	ctx context.Context,
	projectID uint,
) (capex.Assessment, error) {
	gdb, err := r.db(ctx)
	if err != nil {
		return capex.Assessment{}, err
	}
	var rows []schema.RiskAssessment
	err = preload(gdb).
		Where("project_id = ?", projectID).
		Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return capex.Assessment{}, capex.PersistenceError("read risk assessments", err)
	}
	if len(rows) == 0 {
		return capex.Assessment{}, capex.NotFoundError(
			"risk assessment of project", fmt.Sprint(projectID))
	}
	return toAssessment(rows[0]), nil
}

// List returns all assessments of a project, oldest first.
func (r *rater) List(
	ctx context.Context,
	projectID uint,
) ([]capex.Assessment, error) {
	gdb, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	if err = projectExists(gdb, projectID); err != nil {
		return nil, err
	}
	var rows []schema.RiskAssessment
	err = preload(gdb).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, capex.PersistenceError("read risk assessments", err)
	}
	res := make([]capex.Assessment, len(rows))
	for i, v := range rows {
		res[i] = toAssessment(v)
	}
	return res, nil
}

func preload(gdb *gorm.DB) *gorm.DB {
	return gdb.Preload("Consequence").Preload("Likelihood")
}

// lookup finds a consequence or likelihood row by code or description.
func lookup(tx *gorm.DB, dest any, entity, key string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return capex.ValidationError(entity, "value is required")
	}
	q := tx.Where("UPPER(code) = ? OR UPPER(description) = ?", key, key).
		Limit(1).Find(dest)
	if q.Error != nil {
		return capex.PersistenceError("look up "+entity, q.Error)
	}
	if q.RowsAffected == 0 {
		return capex.NotFoundError(entity, key)
	}
	return nil
}

func toAssessment(r schema.RiskAssessment) capex.Assessment {
	res := capex.Assessment{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Rating:    risk.Rating(r.RiskRating),
		CreatedAt: r.CreatedAt,
	}
	if r.Consequence != nil {
		res.Consequence = r.Consequence.Code
	}
	if r.Likelihood != nil {
		res.Likelihood = r.Likelihood.Code
	}
	return res
}

func projectExists(tx *gorm.DB, projectID uint) error {
	var n int64
	err := tx.Model(&schema.Project{}).Where("id = ?", projectID).Count(&n).Error
	if err != nil {
		return capex.PersistenceError("look up project", err)
	}
	if n == 0 {
		return capex.NotFoundError("project", fmt.Sprint(projectID))
	}
	return nil
}
