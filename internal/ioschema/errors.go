package ioschema

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

var errNotConnected = errors.New("schema manager has no database connection")

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  errNotConnected,
	}
}

// CreateSchemaError wraps a failed AutoMigrate or DROP during
// 'capexdb create'.
func CreateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg: `Cannot create database schema

<em>Check that:</em>
  - the database user may create and drop tables
  - the SQLite file and its directory are writable`,
		Err: fmt.Errorf("create schema: %w", err),
	}
}

func MigrateSchemaError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg: `Cannot migrate database schema

Back up the planning database, then compare it with a fresh
schema made by <em>capexdb create --force</em> on a copy.`,
		Err: fmt.Errorf("migrate schema: %w", err),
	}
}

// SeedDataError means the embedded reference YAML is broken, which
// is a build problem rather than a user one.
func SeedDataError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaSeedDataError,
		Msg:  "Cannot read built-in reference data",
		Err:  fmt.Errorf("parse reference data: %w", err),
	}
}

func SeedError(table string, err error) error {
	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  "Cannot load reference data into <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("seed %s: %w", table, err),
	}
}
