package ioreport_test

import (
	"context"
	"testing"
	"time"

	"github.com/odysseus-imc/capexdb/internal/iocost"
	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/internal/ioreport"
	"github.com/odysseus-imc/capexdb/internal/iostatus"
	"github.com/odysseus-imc/capexdb/internal/iotesting"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Empty(t *testing.T) {
	op := iotesting.NewStore(t)
	res, err := ioreport.New(op).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.TotalProjects)
	assert.Zero(t, res.TotalBudget)
	assert.Empty(t, res.StatusCounts)
	assert.True(t, res.Weights.Balanced())
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op, ioproject.OptClock(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	tr := iostatus.New(op)
	b := iocost.New(op)

	inputs := []capex.ProjectInput{
		{AssetCode: "R-1", AssetClass: "Regulators", Scope: "a"},
		{AssetCode: "R-2", AssetClass: "regulators", Scope: "b"},
		{AssetCode: "M-1", AssetClass: "Meters", Scope: "c"},
		{AssetCode: "B-1", Scope: "d"},
	}
	ids := make([]uint, len(inputs))
	for i, v := range inputs {
		res, err := u.Upsert(ctx, v, false)
		require.NoError(t, err)
		ids[i] = res.ProjectID
	}

	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := tr.Append(ctx, ids[0], "IN_PROGRESS", june, "")
	require.NoError(t, err)
	_, err = tr.Append(ctx, ids[1], "DESIGN", june, "")
	require.NoError(t, err)
	_, err = tr.Append(ctx, ids[2], "COMPLETED", june, "")
	require.NoError(t, err)
	// earlier date does not change the current status
	_, err = tr.Append(ctx, ids[2], "ON_HOLD", june.AddDate(0, -1, 0), "")
	require.NoError(t, err)

	for _, v := range []capex.YearCost{
		{ProjectID: ids[0], FinancialYear: "FY 25-26", ProjectCost: 1000},
		{ProjectID: ids[0], FinancialYear: "FY 24-25", ProjectCost: 500},
		{ProjectID: ids[1], FinancialYear: "FY 25-26", ProjectCost: 250},
	} {
		require.NoError(t, b.Set(ctx, v))
	}

	res, err := ioreport.New(op).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.TotalProjects)
	assert.Equal(t, 1750.0, res.TotalBudget)
	assert.Equal(t, 2, res.ActiveProjects)
	assert.Equal(t, 1, res.CompletedProjects)

	assert.Equal(t, []capex.Count{
		{Label: "Regulators", Count: 2},
		{Label: "Bridges & Culverts", Count: 1},
		{Label: "Meters", Count: 1},
	}, res.ByAssetClass)

	assert.Equal(t, []capex.Amount{
		{Label: "FY 24-25", Amount: 500},
		{Label: "FY 25-26", Amount: 1250},
	}, res.BudgetByYear)

	assert.Equal(t, []capex.Count{
		{Label: "COMPLETED", Count: 1},
		{Label: "DESIGN", Count: 1},
		{Label: "IN_PROGRESS", Count: 1},
		{Label: "PLANNED", Count: 1},
	}, res.StatusCounts)
}

func TestProgram(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)
	b := iocost.New(op)

	var ids []uint
	for _, v := range []capex.ProjectInput{
		{AssetCode: "R-1", AssetClass: "Regulators", Scope: "a"},
		{AssetCode: "R-2", AssetClass: "Regulators", Scope: "b"},
		{AssetCode: "M-1", AssetClass: "Meters", Scope: "c"},
	} {
		res, err := u.Upsert(ctx, v, false)
		require.NoError(t, err)
		ids = append(ids, res.ProjectID)
	}
	for _, v := range []capex.YearCost{
		{ProjectID: ids[0], FinancialYear: "FY 25-26", ProjectCost: 1000},
		{ProjectID: ids[1], FinancialYear: "FY 25-26", ProjectCost: 200},
		{ProjectID: ids[0], FinancialYear: "FY 24-25", ProjectCost: 500},
		{ProjectID: ids[2], FinancialYear: "FY 26-27", ProjectCost: 300},
		{ProjectID: ids[2], FinancialYear: "FY 27-28", ProjectCost: 50},
	} {
		require.NoError(t, b.Set(ctx, v))
	}
	r := ioreport.New(op)

	t.Run("all years", func(t *testing.T) {
		res, err := r.Program(ctx, "", 0)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"FY 24-25", "FY 25-26", "FY 26-27", "FY 27-28"}, res.Years)
		assert.Equal(t, []capex.ProgramRow{
			{AssetClass: "Meters", Amounts: []float64{0, 0, 300, 50}, Total: 350},
			{AssetClass: "Regulators", Amounts: []float64{500, 1200, 0, 0}, Total: 1700},
		}, res.Rows)
		assert.Equal(t, []float64{500, 1200, 300, 50}, res.YearTotals)
		assert.Equal(t, 2050.0, res.Total)
	})

	t.Run("window", func(t *testing.T) {
		res, err := r.Program(ctx, " FY  25-26 ", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"FY 25-26"}, res.Years)
		assert.Equal(t, []capex.ProgramRow{
			{AssetClass: "Regulators", Amounts: []float64{1200}, Total: 1200},
		}, res.Rows)
		assert.Equal(t, 1200.0, res.Total)
	})

	t.Run("past the last year", func(t *testing.T) {
		res, err := r.Program(ctx, "FY 30-31", 3)
		require.NoError(t, err)
		assert.Empty(t, res.Years)
		assert.Empty(t, res.Rows)
		assert.Zero(t, res.Total)
	})
}

func TestProgram_Empty(t *testing.T) {
	op := iotesting.NewStore(t)
	res, err := ioreport.New(op).Program(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Years)
}
