package iorisk_test

import (
	"context"
	"testing"

	"github.com/odysseus-imc/capexdb/internal/ioproject"
	"github.com/odysseus-imc/capexdb/internal/iorisk"
	"github.com/odysseus-imc/capexdb/internal/iotesting"
	"github.com/odysseus-imc/capexdb/pkg/capex"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/odysseus-imc/capexdb/pkg/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	p, err := ioproject.New(op).Upsert(ctx, capex.ProjectInput{
		AssetCode: "REG-1", Scope: "Replace gate",
	}, false)
	require.NoError(t, err)
	r := iorisk.New(op)

	tests := []struct {
		msg         string
		consequence string
		likelihood  string
		rating      risk.Rating
	}{
		{"lowest", "L", "R", risk.Low},
		{"moderate edge", "M", "L", risk.Moderate},
		{"high", "H", "hl", risk.High},
		{"by description", "Very High", "Likely", risk.High},
		{"extreme", "C", "AC", risk.Extreme},
	}

	for _, v := range tests {
		res, err := r.Assess(ctx, p.ProjectID, v.consequence, v.likelihood)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.rating, res.Rating, v.msg)
	}

	cur, err := r.Current(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, risk.Extreme, cur.Rating)
	assert.Equal(t, "C", cur.Consequence)
	assert.Equal(t, "AC", cur.Likelihood)

	all, err := r.List(ctx, p.ProjectID)
	require.NoError(t, err)
	assert.Len(t, all, len(tests))
	assert.Equal(t, risk.Low, all[0].Rating)
}

func TestAssess_Errors(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	p, err := ioproject.New(op).Upsert(ctx, capex.ProjectInput{
		AssetCode: "REG-1", Scope: "Replace gate",
	}, false)
	require.NoError(t, err)
	r := iorisk.New(op)

	_, err = r.Assess(ctx, p.ProjectID, "X", "R")
	assert.True(t, errcode.Is(err, errcode.NotFoundError))

	_, err = r.Assess(ctx, p.ProjectID, "L", "")
	assert.True(t, errcode.Is(err, errcode.ValidationError))

	_, err = r.Assess(ctx, p.ProjectID+1, "L", "R")
	assert.True(t, errcode.Is(err, errcode.NotFoundError))

	_, err = r.Current(ctx, p.ProjectID)
	assert.True(t, errcode.Is(err, errcode.NotFoundError))
}
