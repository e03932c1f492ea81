package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// ConnectionError is returned when the PostgreSQL store cannot be reached.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `<title>Database Connection Failed</title>

<warning>Could not connect to PostgreSQL database.</warning>

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database <em>%s</em> exists and user <em>%s</em> can reach it

  3. Check your configuration file:
     <em>~/.config/capexdb/config.yaml</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// FileConnectionError is returned when the SQLite file cannot be opened.
func FileConnectionError(path string, err error) error {
	msg := "Cannot open planning database <em>%s</em>"
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open %s: %w", path, err),
	}
}

// UnsupportedDriverError is returned for an unknown driver name.
func UnsupportedDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported"
	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unsupported driver %q", driver),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when listing tables fails.
func TableCheckError(err error) error {
	msg := "Could not verify database state"
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// EmptyDatabaseError is returned when a command needs the schema but the
// store has no tables yet.
func EmptyDatabaseError() error {
	msg := `<err>Database appears to be empty.</err>
   Run <em>'capexdb create'</em> first to initialize the schema.`
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Err:  fmt.Errorf("database has no tables"),
	}
}
