// Package iodb implements db.Operator on top of GORM. The embedded store
// uses SQLite (glebarez/sqlite), the server store uses PostgreSQL through a
// pgx pool. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/odysseus-imc/capexdb/pkg/db"
	"github.com/odysseus-imc/capexdb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory SQLite store.
const MemoryPath = ":memory:"

type operator struct {
	driver string
	db     *gorm.DB
	pool   *pgxpool.Pool
}

// NewOperator creates a new database operator (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect opens the store selected by cfg.Driver.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	switch cfg.Driver {
	case "sqlite":
		return o.connectSQLite(cfg.Path)
	case "postgres":
		return o.connectPostgres(ctx, cfg)
	default:
		return UnsupportedDriverError(cfg.Driver)
	}
}

// connectSQLite opens the file with foreign keys on. A single
// connection serializes writers and keeps an in-memory store shared.
func (o *operator) connectSQLite(path string) error {
	if path == "" {
		return FileConnectionError(path, fmt.Errorf("empty path"))
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return FileConnectionError(path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return FileConnectionError(path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return FileConnectionError(path, err)
	}

	o.driver = "sqlite"
	o.db = gormDB
	return nil
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.driver = "postgres"
	o.pool = pool
	o.db = gormDB
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

// Close releases all database connections.
func (o *operator) Close() error {
	if o.db != nil {
		if sqlDB, err := o.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.db = nil
	o.pool = nil
	return nil
}

// DB returns the GORM handle.
func (o *operator) DB() *gorm.DB {
	return o.db
}

// Driver returns the name of the connected driver.
func (o *operator) Driver() string {
	return o.driver
}

// Ping checks the connection.
func (o *operator) Ping(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}
	sqlDB, err := o.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// HasTables checks if the store has any tables.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}
	tables, err := userTables(o.db.WithContext(ctx))
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// userTables lists tables without SQLite internal ones.
func userTables(gdb *gorm.DB) ([]string, error) {
	tables, err := gdb.Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(tables, func(t string) bool {
		return strings.HasPrefix(t, "sqlite_")
	}), nil
}

// DropAllTables drops the planning tables, dependents first, and then
// any other table left in the store.
func (o *operator) DropAllTables(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}
	m := o.db.WithContext(ctx).Migrator()

	models := schema.AllModels()
	slices.Reverse(models)
	for _, v := range models {
		if err := m.DropTable(v); err != nil {
			return DropTableError(fmt.Sprintf("%T", v), err)
		}
	}

	tables, err := userTables(o.db.WithContext(ctx))
	if err != nil {
		return TableCheckError(err)
	}
	for _, t := range tables {
		if err := m.DropTable(t); err != nil {
			return DropTableError(t, err)
		}
	}
	return nil
}
