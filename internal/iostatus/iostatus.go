// Package iostatus implements capex.StatusTracker on the append-only
// project_status_history table. Rows are only inserted. Current status is
// computed from the loaded log by pkg/status.
package iostatus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odysseus-imc/capexdb/internal/ioref"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/status"
	"gorm.io/gorm"
)

type tracker struct {
	operator db.Operator
}

// New creates a StatusTracker.
func New(op db.Operator) capex.StatusTracker {
	return &tracker{operator: op}
}

func (t *tracker) db(ctx context.Context) (*gorm.DB, error) {
	gdb := t.operator.DB()
	if gdb == nil {
		return nil, capex.StoreUnavailableError(errors.New("not connected"))
	}
	return gdb.WithContext(ctx), nil
}

// Append records a status event. Any status may follow any other.
// A zero date means now.
func (t *tracker) Append(
	ctx context.Context,
	projectID uint,
	code string,
	date time.Time,
	comments string,
) (status.Event, error) {
	gdb, err := t.db(ctx)
	if err != nil {
		return status.Event{}, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	var row schema.ProjectStatusHistory
	var statusCode string
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := projectExists(tx, projectID); err != nil {
			return err
		}
		statusID, err := ioref.Resolve(tx, capex.ProjectStatus, code, 0)
		if err != nil {
			return err
		}
		var ps schema.ProjectStatus
		if err = tx.First(&ps, statusID).Error; err != nil {
			return capex.PersistenceError("look up project status", err)
		}
		statusCode = ps.Code
		row, err = AppendTx(tx, projectID, statusID, date, comments)
		return err
	})
	if err != nil {
		return status.Event{}, err
	}

	ev := toEvent(row)
	ev.Code = statusCode
	return ev, nil
}

// AppendTx inserts a status row inside the caller's transaction. Seq is
// one more than the largest Seq of the project.
func AppendTx(
	tx *gorm.DB,
	projectID, statusID uint,
	date time.Time,
	comments string,
) (schema.ProjectStatusHistory, error) {
	var maxSeq int64
	err := tx.Model(&schema.ProjectStatusHistory{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(seq), 0)").
		Row().Scan(&maxSeq)
	if err != nil {
		return schema.ProjectStatusHistory{},
			capex.PersistenceError("read status history", err)
	}

	row := schema.ProjectStatusHistory{
		ProjectID:       projectID,
		ProjectStatusID: statusID,
		StatusDate:      date.UTC(),
		Seq:             maxSeq + 1,
		Comments:        comments,
	}
	if err = tx.Create(&row).Error; err != nil {
		return schema.ProjectStatusHistory{},
			capex.PersistenceError("append status", err)
	}
	return row, nil
}

// Current returns the latest status event of a project.
func (t *tracker) Current(
	ctx context.Context,
	projectID uint,
) (status.Event, error) {
	events, err := t.History(ctx, projectID)
	if err != nil {
		return status.Event{}, err
	}
	res, ok := status.Current(events)
	if !ok {
		return status.Event{}, capex.NotFoundError(
			"status of project", fmt.Sprint(projectID))
	}
	return res, nil
}

// History returns status events of a project from the oldest to the
// current one.
func (t *tracker) History(
	ctx context.Context,
	projectID uint,
) ([]status.Event, error) {
	gdb, err := t.db(ctx)
	if err != nil {
		return nil, err
	}
	if err = projectExists(gdb, projectID); err != nil {
		return nil, err
	}
	events, err := loadEvents(gdb.Where("project_id = ?", projectID))
	if err != nil {
		return nil, err
	}
	return status.Timeline(events), nil
}

// CurrentAll returns the current event of every project with history.
func (t *tracker) CurrentAll(ctx context.Context) (map[uint]status.Event, error) {
	gdb, err := t.db(ctx)
	if err != nil {
		return nil, err
	}
	return CurrentAll(gdb)
}

// CurrentAll computes current events using the given handle.
func CurrentAll(gdb *gorm.DB) (map[uint]status.Event, error) {
	events, err := loadEvents(gdb)
	if err != nil {
		return nil, err
	}
	return status.CurrentByProject(events), nil
}

func loadEvents(q *gorm.DB) ([]status.Event, error) {
	var rows []schema.ProjectStatusHistory
	if err := q.Preload("ProjectStatus").Find(&rows).Error; err != nil {
		return nil, capex.PersistenceError("read status history", err)
	}
	res := make([]status.Event, len(rows))
	for i, v := range rows {
		res[i] = toEvent(v)
	}
	return res, nil
}

func toEvent(r schema.ProjectStatusHistory) status.Event {
	res := status.Event{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		StatusID:  r.ProjectStatusID,
		Date:      r.StatusDate,
		Seq:       r.Seq,
		Comments:  r.Comments,
	}
	if r.ProjectStatus != nil {
		res.Code = r.ProjectStatus.Code
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
