// Package ioimport implements capex.Importer, the bulk import of
// projects. Rows are processed in input order, each in its own upsert
// transaction. A failed row is reported and the next row is attempted;
// only a store that stops answering aborts the batch.
package ioimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/tabular"
)

// Column names of the import table.
const (
	ColAssetCode        = "asset_code"
	ColAssetClass       = "asset_class"
	ColAssetType        = "asset_type"
	ColDescription      = "description"
	ColProjectScope     = "project_scope"
	ColDesignStatus     = "design_status"
	ColEnvStatus        = "env_status"
	ColWHSScore         = "whs_score"
	ColWaterScore       = "water_score"
	ColCustomerScore    = "customer_score"
	ColMaintenanceScore = "maintenance_score"
	ColFinancialScore   = "financial_score"
)

// Required columns must be in the header.
var Required = []string{ColAssetCode, ColProjectScope}

type importer struct {
	operator db.Operator
	cfg      *config.Config
	upserter capex.Upserter
}

// New creates an Importer.
func New(op db.Operator, cfg *config.Config) capex.Importer {
	return &importer{
		operator: op,
		cfg:      cfg,
		upserter: ioproject.New(op),
	}
}

// Import writes every row of tbl. Row numbers in errors are 1-based data
// rows. On a missing required column nothing is written.
func (imp *importer) Import(
	ctx context.Context,
	source string,
	tbl *tabular.Table,
	overwrite bool,
) (capex.ImportResult, error) {
	var res capex.ImportResult
	if missing := tbl.Missing(Required...); len(missing) > 0 {
		return res, MissingColumnsError(missing)
	}

	timeStart := time.Now()
	run := schema.ImportRun{
		ID:        uuid.New().String(),
		Source:    source,
		Overwrite: overwrite,
		Rows:      tbl.Len(),
		StartedAt: timeStart,
	}
	res.RunID = run.ID
	res.Rows = tbl.Len()

	slog.Info("Importing projects",
		"run_id", run.ID, "source", source, "rows", tbl.Len(), "overwrite", overwrite)

	var bar *pb.ProgressBar
	if imp.cfg.WithProgress() {
		bar = pb.Full.Start(tbl.Len())
		bar.Set("prefix", "Importing projects: ")
		bar.Set(pb.CleanOnFinish, true)
	}

	var abortErr error
	for i := range tbl.Len() {
		rowNum := i + 1
		err := imp.importRow(ctx, tbl.Row(i), overwrite)
		if bar != nil {
			bar.Increment()
		}
		if err == nil {
			res.Imported++
			continue
		}

		res.Errors = append(res.Errors, capex.RowError{Row: rowNum, Err: err})
		slog.Warn("Row was not imported", "row", rowNum, "error", err)

		if errcode.Is(err, errcode.StoreUnavailableError) {
			abortErr = err
			break
		}
		if errcode.Is(err, errcode.PersistenceError) {
			if pingErr := imp.operator.Ping(ctx); pingErr != nil {
				abortErr = capex.StoreUnavailableError(pingErr)
				break
			}
		}
	}
	if bar != nil {
		bar.Finish()
	}

	run.Imported = res.Imported
	run.Failed = len(res.Errors)
	run.FinishedAt = time.Now()
	imp.saveRun(ctx, run)

	slog.Info("Import finished",
		"run_id", run.ID,
		"imported", humanize.Comma(int64(res.Imported)),
		"failed", humanize.Comma(int64(len(res.Errors))),
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return res, abortErr
}

func (imp *importer) importRow(
	ctx context.Context,
	row tabular.Row,
	overwrite bool,
) error {
	in, err := rowInput(row)
	if err != nil {
		return err
	}
	_, err = imp.upserter.Upsert(ctx, in, overwrite)
	return err
}

// rowInput converts a row to project input. Blank optional cells get
// their defaults later in the upsert.
func rowInput(row tabular.Row) (capex.ProjectInput, error) {
	in := capex.ProjectInput{Comment: capex.ImportComment}
	in.AssetCode, _ = row.Text(ColAssetCode)
	in.AssetClass, _ = row.Text(ColAssetClass)
	in.AssetType, _ = row.Text(ColAssetType)
	in.Description, _ = row.Text(ColDescription)
	in.Scope, _ = row.Text(ColProjectScope)
	in.DesignStatus, _ = row.Text(ColDesignStatus)
	in.EnvStatus, _ = row.Text(ColEnvStatus)

	scores := []struct {
		col string
		val *float64
	}{
		{ColWHSScore, &in.Scores.WHS},
		{ColWaterScore, &in.Scores.WaterSavings},
		{ColCustomerScore, &in.Scores.Customer},
		{ColMaintenanceScore, &in.Scores.Maintenance},
		{ColFinancialScore, &in.Scores.Financial},
	}
	for _, v := range scores {
		val, _, err := row.Float(v.col)
		if err != nil {
			return in, capex.ValidationError(v.col, err.Error())
		}
		*v.val = val
	}
	return in, nil
}

// saveRun records the run. A failure is logged and does not change the
// result of the import.
func (imp *importer) saveRun(ctx context.Context, run schema.ImportRun) {
	gdb := imp.operator.DB()
	if gdb == nil {
		return
	}
	if err := gdb.WithContext(ctx).Create(&run).Error; err != nil {
		slog.Warn("Cannot save import run", "run_id", run.ID, "error", err)
	}
}
