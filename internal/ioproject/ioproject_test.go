package ioproject_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/internal/iostatus"
	"github.com/odysseus-imc/capexdb/internal/iotesting"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/odysseus-imc/capexdb/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func input() capex.ProjectInput {
	return capex.ProjectInput{
		AssetCode:   "CD-2-001",
		AssetClass:  "Regulators",
		AssetType:   "Drop Bar",
		Description: "Regulator on channel 2",
		Scope:       "Automate regulator",
		Scores: scoring.Components{
			WHS: 8, WaterSavings: 5, Customer: 7, Maintenance: 9, Financial: 6,
		},
	}
}

func TestUpsert_New(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	res, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)
	assert.True(t, res.Created)

	var score schema.PriorityScore
	require.NoError(t, op.DB().Where("asset_id = ?", res.AssetID).First(&score).Error)
	assert.Equal(t, 35.0, score.TotalScore)

	var asset schema.Asset
	require.NoError(t, op.DB().Preload("AssetType.AssetClass").First(&asset, res.AssetID).Error)
	assert.Equal(t, "Drop Bar", asset.AssetType.Name)
	assert.Equal(t, "Regulators", asset.AssetType.AssetClass.Name)

	var project schema.Project
	require.NoError(t, op.DB().Preload("DesignStatus").Preload("EnvStatus").
		First(&project, res.ProjectID).Error)
	assert.Equal(t, capex.DefaultDesignStatus, project.DesignStatus.Name)
	assert.Equal(t, capex.DefaultEnvStatus, project.EnvStatus.Name)
	assert.Nil(t, project.PriorityRank)

	cur, err := iostatus.New(op).Current(ctx, res.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusPlanned, cur.Code)
	assert.Equal(t, capex.DefaultComment, cur.Comments)
}

func TestUpsert_Defaults(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	res, err := u.Upsert(ctx, capex.ProjectInput{
		AssetCode:  "OUT-7",
		AssetClass: "  ",
		Scope:      "Replace outlet",
	}, false)
	require.NoError(t, err)

	var asset schema.Asset
	require.NoError(t, op.DB().Preload("AssetType.AssetClass").First(&asset, res.AssetID).Error)
	assert.Equal(t, capex.DefaultAssetType, asset.AssetType.Name)
	assert.Equal(t, capex.DefaultAssetClass, asset.AssetType.AssetClass.Name)
}

func TestUpsert_Validation(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	tests := []struct {
		msg   string
		input capex.ProjectInput
	}{
		{"no code", capex.ProjectInput{Scope: "x"}},
		{"blank code", capex.ProjectInput{AssetCode: "  ", Scope: "x"}},
		{"no scope", capex.ProjectInput{AssetCode: "A-1"}},
		{"infinite score", capex.ProjectInput{
			AssetCode: "A-1",
			Scope:     "x",
			Scores:    scoring.Components{Customer: math.Inf(1)},
		}},
		{"NaN score", capex.ProjectInput{
			AssetCode: "A-1",
			Scope:     "x",
			Scores:    scoring.Components{WHS: math.NaN()},
		}},
	}

	for _, v := range tests {
		_, err := u.Upsert(ctx, v.input, false)
		require.Error(t, err, v.msg)
		assert.True(t, errcode.Is(err, errcode.ValidationError), v.msg)
	}

	var n int64
	require.NoError(t, op.DB().Model(&schema.Asset{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpsert_Duplicate(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	_, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)

	in := input()
	in.Scope = "Something else"
	_, err = u.Upsert(ctx, in, false)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.DuplicateAssetError))
	assert.Equal(t,
		"Asset CD-2-001 already exists. Use overwrite option to replace.",
		capex.Message(err))

	var project schema.Project
	require.NoError(t, op.DB().First(&project).Error)
	assert.Equal(t, "Automate regulator", project.Scope)
}

func TestUpsert_Overwrite(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)
	tr := iostatus.New(op)

	first, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)
	_, err = tr.Append(ctx, first.ProjectID, "DESIGN", time.Time{}, "")
	require.NoError(t, err)

	in := input()
	in.Scope = "Replace regulator"
	in.DesignStatus = "Approved"
	in.Scores.WHS = 20
	res, err := u.Upsert(ctx, in, true)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, first.AssetID, res.AssetID)
	assert.Equal(t, first.ProjectID, res.ProjectID)

	var n int64
	require.NoError(t, op.DB().Model(&schema.Asset{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, op.DB().Model(&schema.PriorityScore{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	var score schema.PriorityScore
	require.NoError(t, op.DB().First(&score).Error)
	assert.Equal(t, 47.0, score.TotalScore)

	var project schema.Project
	require.NoError(t, op.DB().Preload("DesignStatus").First(&project, res.ProjectID).Error)
	assert.Equal(t, "Replace regulator", project.Scope)
	assert.Equal(t, "Approved", project.DesignStatus.Name)

	hist, err := tr.History(ctx, res.ProjectID)
	require.NoError(t, err)
	assert.Len(t, hist, 2, "overwrite keeps history and adds no status")
}

func TestUpsert_NegativeScores(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	in := input()
	in.Scores.Financial = -6
	in.Scores.WHS = 45
	res, err := u.Upsert(ctx, in, false)
	require.NoError(t, err)

	var score schema.PriorityScore
	require.NoError(t, op.DB().Where("asset_id = ?", res.AssetID).First(&score).Error)
	assert.Zero(t, score.FinancialScore)
	assert.Equal(t, 45.0, score.WHSScore)
	assert.Equal(t, 66.0, score.TotalScore)
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	res, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)
	require.NoError(t, op.DB().Create(&schema.ProjectYearCost{
		ProjectID: res.ProjectID, FinancialYear: "2025-26", ProjectCost: 1000,
	}).Error)

	require.NoError(t, u.DeleteProject(ctx, res.ProjectID))

	for _, m := range []any{
		&schema.Project{}, &schema.ProjectYearCost{}, &schema.ProjectStatusHistory{},
	} {
		var n int64
		require.NoError(t, op.DB().Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
	var n int64
	require.NoError(t, op.DB().Model(&schema.Asset{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "asset is kept")

	err = u.DeleteProject(ctx, res.ProjectID)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.NotFoundError))
}

func TestUpsert_RecreatesMissingProject(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	res, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)
	require.NoError(t, u.DeleteProject(ctx, res.ProjectID))

	again, err := u.Upsert(ctx, input(), true)
	require.NoError(t, err)
	assert.Equal(t, res.AssetID, again.AssetID)
	assert.NotEqual(t, res.ProjectID, again.ProjectID)

	cur, err := iostatus.New(op).Current(ctx, again.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusPlanned, cur.Code)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	_, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)
	in := input()
	in.AssetCode = "CD-2-002"
	_, err = u.Upsert(ctx, in, false)
	require.NoError(t, err)

	res, err := u.List(ctx)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "CD-2-001", res[0].AssetCode)
	assert.Equal(t, "Regulators", res[0].AssetClass)
	assert.Equal(t, "Drop Bar", res[0].AssetType)
	assert.Equal(t, 35.0, res[0].TotalScore)
	assert.Nil(t, res[0].PriorityRank)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	_, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)

	got, err := u.Get(ctx, " CD-2-001 ")
	require.NoError(t, err)
	want := input()
	want.DesignStatus = capex.DefaultDesignStatus
	want.EnvStatus = capex.DefaultEnvStatus
	assert.Equal(t, want, got)

	_, err = u.Get(ctx, "NOPE-1")
	assert.True(t, errcode.Is(err, errcode.NotFoundError))
}

// TestGet_EditScope changes only the scope of a stored project and
// keeps everything else.
func TestGet_EditScope(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	first, err := u.Upsert(ctx, input(), false)
	require.NoError(t, err)

	cur, err := u.Get(ctx, "CD-2-001")
	require.NoError(t, err)
	cur.Scope = "New scope"
	res, err := u.Upsert(ctx, cur, true)
	require.NoError(t, err)
	assert.Equal(t, first.ProjectID, res.ProjectID)

	var score schema.PriorityScore
	require.NoError(t, op.DB().Where("asset_id = ?", res.AssetID).First(&score).Error)
	assert.Equal(t, 35.0, score.TotalScore)
	assert.Equal(t, 8.0, score.WHSScore)

	var asset schema.Asset
	require.NoError(t, op.DB().Preload("AssetType.AssetClass").First(&asset, res.AssetID).Error)
	assert.Equal(t, "Regulators", asset.AssetType.AssetClass.Name)
	assert.Equal(t, "Drop Bar", asset.AssetType.Name)
	assert.Equal(t, "Regulator on channel 2", asset.Description)

	var project schema.Project
	require.NoError(t, op.DB().First(&project, res.ProjectID).Error)
	assert.Equal(t, "New scope", project.Scope)
}

// TestUpsert_Rollback fails the last insert of a new project and checks
// that nothing of the asset, score, project or its new references is
// left behind.
func TestUpsert_Rollback(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	u := ioproject.New(op)

	count := func(m any) int64 {
		var n int64
		require.NoError(t, op.DB().Model(m).Count(&n).Error)
		return n
	}
	models := []any{
		&schema.Asset{}, &schema.PriorityScore{}, &schema.Project{},
		&schema.ProjectStatusHistory{}, &schema.AssetClass{},
		&schema.AssetType{}, &schema.DesignStatus{}, &schema.EnvStatus{},
	}
	before := make([]int64, len(models))
	for i, m := range models {
		before[i] = count(m)
	}

	err := op.DB().Callback().Create().Before("gorm:create").
		Register("test:fail_history", func(tx *gorm.DB) {
			if tx.Statement.Table == "project_status_history" {
				_ = tx.AddError(errors.New("disk full"))
			}
		})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = op.DB().Callback().Create().Remove("test:fail_history")
	})

	in := input()
	in.AssetClass = "Meters"
	in.AssetType = "Dethridge"
	in.DesignStatus = "Concept design"
	in.EnvStatus = "Referral lodged"
	_, err = u.Upsert(ctx, in, false)
	require.Error(t, err)
	assert.True(t, errcode.Is(err, errcode.PersistenceError))

	for i, m := range models {
		assert.Equal(t, before[i], count(m), "%T", m)
	}
}
