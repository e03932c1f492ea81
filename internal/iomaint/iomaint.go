// Package iomaint implements lifecycle.Maintainer. It removes rows whose
// owner is gone and refreshes planner statistics.
package iomaint

import (
	"context"
	"log/slog"
	"time"

	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/lifecycle"
	"gorm.io/gorm"
)

type maintainer struct {
	operator db.Operator
}

// New creates a Maintainer.
func New(op db.Operator) lifecycle.Maintainer {
	return &maintainer{operator: op}
}

// orphan describes a child table and the owner it points to.
type orphan struct {
	table, column, owner string
}

// Child tables are cleaned before their owners could be affected.
var orphans = []orphan{
	{"priority_scores", "asset_id", "assets"},
	{"project_year_costs", "project_id", "projects"},
	{"risk_assessments", "project_id", "projects"},
	{"project_status_history", "project_id", "projects"},
}

// Check deletes orphans in one transaction, then runs ANALYZE.
func (m *maintainer) Check(ctx context.Context) (lifecycle.CheckResult, error) {
	res := lifecycle.CheckResult{Orphans: make(map[string]int64)}
	gdb := m.operator.DB()
	if gdb == nil {
		return res, NotConnectedError()
	}
	gdb = gdb.WithContext(ctx)

	err := gdb.Transaction(func(tx *gorm.DB) error {
		for _, v := range orphans {
			n, err := removeOrphans(tx, v)
			if err != nil {
				return err
			}
			res.Orphans[v.table] = n
		}
		return nil
	})
	if err != nil {
		return lifecycle.CheckResult{}, err
	}

	if err = analyze(gdb, m.operator.Driver()); err != nil {
		return res, err
	}
	return res, nil
}

// removeOrphans uses the LEFT OUTER JOIN pattern to find child rows
// without an owner.
func removeOrphans(tx *gorm.DB, o orphan) (int64, error) {
	slog.Info("Removing orphan rows", "table", o.table)

	query := `
DELETE FROM ` + o.table + `
WHERE id IN (
	SELECT c.id
	FROM ` + o.table + ` c
	LEFT OUTER JOIN ` + o.owner + ` o
		ON o.id = c.` + o.column + `
	WHERE o.id IS NULL
)`

	q := tx.Exec(query)
	if q.Error != nil {
		return 0, OrphanRemovalError(o.table, q.Error)
	}
	if q.RowsAffected > 0 {
		slog.Info("Removed orphan rows", "table", o.table, "count", q.RowsAffected)
	}
	return q.RowsAffected, nil
}

// analyze updates statistics used by the query planner. PostgreSQL also
// reclaims dead tuples. It cannot run inside a transaction.
func analyze(gdb *gorm.DB, driver string) error {
	stmt := "ANALYZE"
	if driver == "postgres" {
		stmt = "VACUUM ANALYZE"
	}

	slog.Info("Refreshing database statistics", "statement", stmt)
	timeStart := time.Now()

	if err := gdb.Exec(stmt).Error; err != nil {
		slog.Error("Failed to refresh statistics", "error", err)
		return AnalyzeError(err)
	}

	slog.Info("Statistics refreshed", "duration", time.Since(timeStart).String())
	return nil
}
