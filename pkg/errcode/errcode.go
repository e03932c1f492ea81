// Package errcode enumerates error codes used by capexdb.
package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	WriteFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBUnsupportedDriverError
	DBNotConnectedError
	DBTableCheckError
	DBDropTableError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaSeedError
	SchemaSeedDataError

	// Domain errors
	ValidationError
	DuplicateAssetError
	ReferentialIntegrityError
	PersistenceError
	StoreUnavailableError
	NotFoundError
	DuplicateNameError

	// Import errors
	ImportMissingColumnsError
	ImportReadError

	// Maintenance errors
	MaintOrphanRemovalError
	MaintAnalyzeError
)

// Is reports whether err, or any error it wraps, is a *gn.Error
// with the given code.
func Is(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	return gnErr.Code == code
}
