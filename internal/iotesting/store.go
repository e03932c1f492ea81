// Package iotesting provides shared test utilities for store tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"testing"

	"github.com/odysseus-imc/capexdb/internal/iodb"
	"github.com/odysseus-imc/capexdb/internal/ioschema"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/stretchr/testify/require"
)

// NewStore returns a connected in-memory SQLite store with the schema
// created and reference data loaded. The store is closed when the test
// finishes.
func NewStore(t *testing.T) db.Operator {
	t.Helper()
	op := NewEmptyStore(t)

	err := ioschema.NewManager(op).Create(context.Background())
	require.NoError(t, err)
	return op
}

// NewEmptyStore returns a connected in-memory SQLite store without
// tables.
func NewEmptyStore(t *testing.T) db.Operator {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabasePath(iodb.MemoryPath)})

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(context.Background(), &cfg.Database))
	t.Cleanup(func() { _ = op.Close() })
	return op
}

// Config returns default configuration with a temporary home directory.
func Config(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabasePath(iodb.MemoryPath),
		config.OptJobsNumber(2),
	})
	off := false
	cfg.Update([]config.Option{config.OptImportShowProgress(&off)})
	return cfg
}
