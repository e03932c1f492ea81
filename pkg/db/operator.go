package db

import (
	"context"

	"github.com/odysseus-imc/capexdb/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the *gorm.DB
// for the components that keep the planning data (resolver, upsert engine,
// scoring, risk, status history, import, reports).
type Operator interface {
	// Connect opens the store described by the configuration.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases the store.
	Close() error

	// DB returns the GORM handle. It is nil before Connect.
	DB() *gorm.DB

	// Driver returns "sqlite" or "postgres".
	Driver() string

	// Ping checks that the store still answers.
	Ping(ctx context.Context) error

	// HasTables checks if the store has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the store.
	DropAllTables(ctx context.Context) error
}
