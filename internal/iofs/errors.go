package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// fileError names the function that failed in the wrapped error, the
// user only sees msg with the path.
func fileError(
	code gn.ErrorCode,
	msg, action, path string,
	err error,
) error {
	caller := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		caller = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("%s: cannot %s %s: %w", caller, action, path, err),
	}
}

// CreateDirError is returned when a capexdb directory cannot be made.
func CreateDirError(dir string, err error) error {
	return fileError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", "create directory", dir, err)
}

// WriteFileError is returned when the config file or the import
// template cannot be written.
func WriteFileError(path string, err error) error {
	return fileError(errcode.WriteFileError,
		"Cannot write file <em>%s</em>", "write", path, err)
}

// ReadFileError is returned when a config or import file cannot be read.
func ReadFileError(path string, err error) error {
	return fileError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}
