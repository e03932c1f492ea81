package ioschema_test

import (
	"context"
	"testing"

	"github.com/odysseus-imc/capexdb/internal/iodb"
	"github.com/odysseus-imc/capexdb/internal/ioschema"
	"github.com/odysseus-imc/capexdb/internal/iotesting"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
	"github.com/odysseus-imc/capexdb/pkg/lifecycle"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ImplementsInterface(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewOperator())
}

func TestManager_NotConnected(t *testing.T) {
	sm := ioschema.NewManager(iodb.NewOperator())
	err := sm.Create(context.Background())
	assert.True(t, errcode.Is(err, errcode.DBNotConnectedError))
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewEmptyStore(t)
	sm := ioschema.NewManager(op)

	require.NoError(t, sm.Create(ctx))

	gdb := op.DB()
	for _, v := range schema.AllModels() {
		assert.True(t, gdb.Migrator().HasTable(v), "%T", v)
	}

	counts := []struct {
		model any
		n     int64
	}{
		{&schema.AssetClass{}, 6},
		{&schema.DesignStatus{}, 6},
		{&schema.EnvStatus{}, 2},
		{&schema.ProjectStatus{}, 6},
		{&schema.Criterion{}, 5},
		{&schema.Consequence{}, 5},
		{&schema.Likelihood{}, 6},
	}
	for _, v := range counts {
		var n int64
		require.NoError(t, gdb.Model(v.model).Count(&n).Error)
		assert.Equal(t, v.n, n, "%T", v.model)
	}

	var c schema.AssetClass
	require.NoError(t, gdb.Where("name = ?", "Bridges & Culverts").First(&c).Error)
	assert.Equal(t, "bridges & culverts", c.NameKey)
}

func TestManager_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	op := iotesting.NewStore(t)
	sm := ioschema.NewManager(op)

	n, err := sm.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// edited criteria are kept
	gdb := op.DB()
	require.NoError(t, gdb.Where("1 = 1").Delete(&schema.Criterion{}).Error)
	require.NoError(t, gdb.Create(&schema.Criterion{Name: "Safety", WeightPct: 100}).Error)
	require.NoError(t, sm.Migrate(ctx))
	n, err = sm.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var cs []schema.Criterion
	require.NoError(t, gdb.Find(&cs).Error)
	require.Len(t, cs, 1)
	assert.Equal(t, "Safety", cs[0].Name)
}
