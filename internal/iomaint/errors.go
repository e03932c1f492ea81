package iomaint

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/pkg/errcode"
)

// NotConnectedError is returned when the check runs without a store.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database connection lost",
		Err:  fmt.Errorf("database is not connected"),
	}
}

// OrphanRemovalError is returned when orphan rows of a table cannot be
// deleted.
func OrphanRemovalError(table string, err error) error {
	msg := "Failed to remove orphan rows from <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.MaintOrphanRemovalError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("delete %s: %w", table, err),
	}
}

// AnalyzeError is returned when planner statistics cannot be refreshed.
func AnalyzeError(err error) error {
	return &gn.Error{
		Code: errcode.MaintAnalyzeError,
		Msg:  "Failed to refresh database statistics",
		Err:  fmt.Errorf("analyze: %w", err),
	}
}
