package ioimport

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// MissingColumnsError aborts an import whose header lacks required
// columns.
func MissingColumnsError(cols []string) error {
	msg := "Import file is missing required columns: <em>%s</em>"
	vars := []any{strings.Join(cols, ", ")}
	return &gn.Error{
		Code: errcode.ImportMissingColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing columns %v", cols),
	}
}

// ReadError is returned when an import file cannot be read or parsed.
func ReadError(path string, err error) error {
	msg := "Cannot read import file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
