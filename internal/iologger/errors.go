package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// CreateLogFileError is returned when the log file cannot be opened.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot open log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("open log file %s: %w", path, err),
	}
}
