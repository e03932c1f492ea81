// Package ioscore implements capex.Scorer. It keeps criteria, recomputes
// weighted totals of all priority scores and re-ranks projects. Every
// change of criteria and its recompute share one transaction, so the
// store never holds totals that disagree with the saved weights.
package ioscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type scorer struct {
	operator db.Operator
	jobs     int
	matcher  scoring.Matcher
}

// New creates a Scorer. Totals are computed by cfg.JobsNumber workers.
func New(op db.Operator, cfg *config.Config) capex.Scorer {
	jobs := 1
	if cfg != nil && cfg.JobsNumber > 0 {
		jobs = cfg.JobsNumber
	}
	return &scorer{
		operator: op,
		jobs:     jobs,
		matcher:  scoring.NewMatcher(nil),
	}
}

func (s *scorer) db(ctx context.Context) (*gorm.DB, error) {
	gdb := s.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}
	return gdb.WithContext(ctx), nil
}

// Criteria returns criteria ordered by id.
func (s *scorer) Criteria(ctx context.Context) ([]capex.Criterion, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := loadCriteria(gdb)
	if err != nil {
		return nil, err
	}
	res := make([]capex.Criterion, len(rows))
	for i, v := range rows {
		res[i] = capex.Criterion{
			ID:         v.ID,
			Name:       v.Name,
			WeightPct:  v.WeightPct,
			Definition: v.Definition,
		}
	}
	return res, nil
}

// WeightStatus sums weights of all criteria.
func (s *scorer) WeightStatus(ctx context.Context) (scoring.WeightStatus, error) {
	gdb, err := s.db(ctx)
	if err != nil {
		return scoring.WeightStatus{}, err
	}
	return WeightStatus(gdb)
}

// WeightStatus sums criterion weights using the given handle.
func WeightStatus(gdb *gorm.DB) (scoring.WeightStatus, error) {
	rows, err := loadCriteria(gdb)
	if err != nil {
		return scoring.WeightStatus{}, err
	}
	return scoring.CheckWeights(weights(rows)), nil
}

func (s *scorer) AddCriterion(
	ctx context.Context,
	c capex.Criterion,
) (capex.Criterion, capex.RecomputeResult, error) {
	var res capex.RecomputeResult
	c, err := validate(c)
	if err != nil {
		return c, res, err
	}
	gdb, err := s.db(ctx)
	if err != nil {
		return c, res, err
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := uniqueName(tx, c.Name, 0); err != nil {
			return err
		}
		row := schema.Criterion{
			Name:       c.Name,
			WeightPct:  c.WeightPct,
			Definition: c.Definition,
		}
		if err := tx.Create(&row).Error; err != nil {
			return capex.PersistenceError("add criterion", err)
		}
		c.ID = row.ID
		res, err = s.recompute(ctx, tx)
		return err
	})
	if err != nil {
		return capex.Criterion{}, capex.RecomputeResult{}, err
	}
	return c, res, nil
}

func (s *scorer) UpdateCriterion(
	ctx context.Context,
	c capex.Criterion,
) (capex.RecomputeResult, error) {
	var res capex.RecomputeResult
	c, err := validate(c)
	if err != nil {
		return res, err
	}
	gdb, err := s.db(ctx)
	if err != nil {
		return res, err
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := criterionExists(tx, c.ID); err != nil {
			return err
		}
		if err := uniqueName(tx, c.Name, c.ID); err != nil {
			return err
		}
		err := tx.Model(&schema.Criterion{ID: c.ID}).Updates(map[string]any{
			"name":       c.Name,
			"weight_pct": c.WeightPct,
			"definition": c.Definition,
		}).Error
		if err != nil {
			return capex.PersistenceError("update criterion", err)
		}
		res, err = s.recompute(ctx, tx)
		return err
	})
	if err != nil {
		return capex.RecomputeResult{}, err
	}
	return res, nil
}

// DeleteCriterion removes a criterion and recomputes totals with the
// remaining ones. Deleting the last criterion leaves totals as they are.
func (s *scorer) DeleteCriterion(
	ctx context.Context,
	id uint,
) (capex.RecomputeResult, error) {
	var res capex.RecomputeResult
	gdb, err := s.db(ctx)
	if err != nil {
		return res, err
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := criterionExists(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&schema.Criterion{}, id).Error; err != nil {
			return capex.PersistenceError("delete criterion", err)
		}
		var err error
		res, err = s.recompute(ctx, tx)
		return err
	})
	if err != nil {
		return capex.RecomputeResult{}, err
	}
	return res, nil
}

// Recompute rewrites every total score with weighted criteria and ranks
// all projects. With no criteria it does nothing.
func (s *scorer) Recompute(ctx context.Context) (capex.RecomputeResult, error) {
	var res capex.RecomputeResult
	gdb, err := s.db(ctx)
	if err != nil {
		return res, err
	}
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.recompute(ctx, tx)
		return err
	})
	if err != nil {
		return capex.RecomputeResult{}, err
	}
	return res, nil
}

func validate(c capex.Criterion) (capex.Criterion, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return c, capex.ValidationError("criterion name", "value is required")
	}
	if math.IsNaN(c.WeightPct) || c.WeightPct < 0 || c.WeightPct > 100 {
		return c, capex.ValidationError(
			"weight", fmt.Sprintf("%g is not between 0 and 100", c.WeightPct))
	}
	return c, nil
}

func uniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var n int64
	err := tx.Model(&schema.Criterion{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&n).Error
	if err != nil {
		return capex.PersistenceError("look up criterion", err)
	}
	if n > 0 {
		return capex.ValidationError("criterion name", name+" already exists")
	}
	return nil
}

func criterionExists(tx *gorm.DB, id uint) error {
	var n int64
	err := tx.Model(&schema.Criterion{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return capex.PersistenceError("look up criterion", err)
	}
	if n == 0 {
		return capex.NotFoundError("criterion", fmt.Sprint(id))
	}
	return nil
}

func loadCriteria(gdb *gorm.DB) ([]schema.Criterion, error) {
	var rows []schema.Criterion
	if err := gdb.Order("id").Find(&rows).Error; err != nil {
		return nil, capex.PersistenceError("read criteria", err)
	}
	return rows, nil
}

func weights(rows []schema.Criterion) []scoring.Weight {
	res := make([]scoring.Weight, len(rows))
	for i, v := range rows {
		res[i] = scoring.Weight{Name: v.Name, WeightPct: v.WeightPct}
	}
	return res
}

// recompute works on a snapshot read inside tx. Totals are computed in
// memory, then written back together with ranks.
func (s *scorer) recompute(
	ctx context.Context,
	tx *gorm.DB,
) (capex.RecomputeResult, error) {
	var res capex.RecomputeResult
	crit, err := loadCriteria(tx)
	if err != nil {
		return res, err
	}
	if len(crit) == 0 {
		slog.Info("No criteria, totals are not recomputed")
		return res, nil
	}
	ws := weights(crit)
	if st := scoring.CheckWeights(ws); !st.Balanced() {
		slog.Warn("Criteria weights are not balanced", "sum", st.Sum)
	}

	var scores []schema.PriorityScore
	if err = tx.Order("id").Find(&scores).Error; err != nil {
		return res, capex.PersistenceError("read priority scores", err)
	}

	totals, err := s.totals(ctx, scores, ws)
	if err != nil {
		return res, err
	}

	byAsset := make(map[uint]float64, len(scores))
	for i, v := range scores {
		err = tx.Model(&schema.PriorityScore{}).
			Where("id = ?", v.ID).
			Update("total_score", totals[i]).Error
		if err != nil {
			return res, capex.PersistenceError("update priority scores", err)
		}
		byAsset[v.AssetID] = totals[i]
	}
	res.Scores = len(scores)

	res.Projects, err = rank(tx, byAsset)
	if err != nil {
		return res, err
	}

	slog.Info("Recomputed weighted totals",
		"criteria", len(crit),
		"scores", res.Scores,
		"projects", res.Projects,
	)
	return res, nil
}

// totals splits scores into chunks, one per worker.
func (s *scorer) totals(
	ctx context.Context,
	scores []schema.PriorityScore,
	ws []scoring.Weight,
) ([]float64, error) {
	res := make([]float64, len(scores))
	if len(scores) == 0 {
		return res, nil
	}

	chunk := (len(scores) + s.jobs - 1) / s.jobs
	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(scores); start += chunk {
		end := min(start+chunk, len(scores))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%1000 == 0 {
					if err := gCtx.Err(); err != nil {
						return err
					}
				}
				res[i] = scoring.WeightedTotal(components(scores[i]), ws, s.matcher)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, capex.PersistenceError("recompute totals", err)
	}
	return res, nil
}

func components(ps schema.PriorityScore) scoring.Components {
	return scoring.Components{
		WHS:          ps.WHSScore,
		WaterSavings: ps.WaterSavingsScore,
		Customer:     ps.CustomerScore,
		Maintenance:  ps.MaintenanceScore,
		Financial:    ps.FinancialScore,
	}
}

type projectAsset struct {
	ID      uint
	AssetID uint
}

func rank(tx *gorm.DB, totals map[uint]float64) (int, error) {
	var projects []projectAsset
	err := tx.Model(&schema.Project{}).
		Select("id, asset_id").
		Order("id").
		Scan(&projects).Error
	if err != nil {
		return 0, capex.PersistenceError("read projects", err)
	}

	scored := make([]scoring.Scored, len(projects))
	for i, v := range projects {
		total, ok := totals[v.AssetID]
		scored[i] = scoring.Scored{ProjectID: v.ID, Total: total, HasScore: ok}
	}

	for id, r := range scoring.Rank(scored) {
		err = tx.Model(&schema.Project{}).
			Where("id = ?", id).
			Update("priority_rank", r).Error
		if err != nil {
			return 0, capex.PersistenceError("update project ranks", err)
		}
	}
	return len(projects), nil
}
