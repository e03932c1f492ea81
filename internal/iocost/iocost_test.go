package iocost_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iocost"
	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/internal/iotesting"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	p, err := ioproject.New(op).Upsert(ctx, capex.ProjectInput{
		AssetCode: "PS-4", Scope: "Refurbish pumps",
	}, false)
	require.NoError(t, err)
	b := iocost.New(op)

	require.NoError(t, b.Set(ctx, capex.YearCost{
		ProjectID: p.ProjectID, FinancialYear: "FY 26-27", ProjectCost: 250_000,
	}))
	require.NoError(t, b.Set(ctx, capex.YearCost{
		ProjectID: p.ProjectID, FinancialYear: "FY  25-26", ProjectCost: 100_000,
		CustomerContribution: 20_000, Summary: "Design",
	}))
	require.NoError(t, b.Set(ctx, capex.YearCost{
		ProjectID: p.ProjectID, FinancialYear: "FY 26-27", ProjectCost: 300_000,
		Summary: "Construction",
	}))

	res, err := b.List(ctx, p.ProjectID)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "FY 25-26", res[0].FinancialYear)
	assert.Equal(t, 20_000.0, res[0].CustomerContribution)
	assert.Equal(t, 300_000.0, res[1].ProjectCost)
	assert.Equal(t, "Construction", res[1].Summary)

	require.NoError(t, b.Delete(ctx, p.ProjectID, "FY 25-26"))
	err = b.Delete(ctx, p.ProjectID, "FY 25-26")
	assert.True(t, errcode.Is(err, errcode.NotFoundError))

	res, err = b.List(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestBudget_Invalid(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	b := iocost.New(op)

	tests := []struct {
		msg  string
		yc   capex.YearCost
		code gn.ErrorCode
	}{
		{"blank year", capex.YearCost{ProjectID: 1, FinancialYear: "  "}, errcode.ValidationError},
		{"negative", capex.YearCost{ProjectID: 1, FinancialYear: "2025-26", ProjectCost: -1}, errcode.ValidationError},
		{"no project", capex.YearCost{ProjectID: 1, FinancialYear: "FY 25-26"}, errcode.NotFoundError},
	}
	for _, v := range tests {
		err := b.Set(ctx, v.yc)
		require.Error(t, err, v.msg)
		assert.True(t, errcode.Is(err, v.code), v.msg)
	}
}
