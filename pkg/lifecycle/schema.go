// Package lifecycle defines contracts for setting up and maintaining the
// planning store.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the schema using GORM AutoMigrate and loads the
	// reference data. If tables already exist, behavior depends on user
	// confirmation via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the schema to the latest version using GORM
	// AutoMigrate. Existing rows are kept.
	Migrate(ctx context.Context) error

	// Seed fills empty reference tables (statuses, criteria, risk
	// lookups, asset classes). Tables that have rows are left alone.
	Seed(ctx context.Context) (int, error)
}
