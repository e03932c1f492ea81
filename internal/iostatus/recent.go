package iostatus

import (
	"context"

	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/schema"
)

// RecentLimit is the number of events Recent returns by default.
const RecentLimit = 20

// Recent returns the newest status events across projects. Events of
// the same date are ordered by their sequence number, then by id. A limit
// below 1 means RecentLimit.
func (t *tracker) Recent(ctx context.Context, limit int) ([]capex.StatusChange, error) {
	gdb, err := t.db(ctx)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = RecentLimit
	}

	var rows []schema.ProjectStatusHistory
	err = gdb.Preload("ProjectStatus").Preload("Project.Asset").
		Order("status_date DESC").Order("seq DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, capex.PersistenceError("read status history", err)
	}

	res := make([]capex.StatusChange, len(rows))
	for i, v := range rows {
		res[i].Event = toEvent(v)
		if v.Project == nil {
			continue
		}
		res[i].Scope = v.Project.Scope
		if v.Project.Asset != nil {
			res[i].AssetCode = v.Project.Asset.Code
		}
	}
	return res, nil
}
