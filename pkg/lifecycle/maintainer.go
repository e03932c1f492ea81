package lifecycle

import (
	"context"
)

// CheckResult reports what an integrity check removed.
type CheckResult struct {
	// Orphans counts removed rows per table.
	Orphans map[string]int64
}

// Total is the number of removed rows.
func (r CheckResult) Total() int64 {
	var res int64
	for _, v := range r.Orphans {
		res += v
	}
	return res
}

// Maintainer keeps the store consistent.
type Maintainer interface {
	// Check removes rows whose owner no longer exists (scores without
	// asset, budget, risk and status rows without project) and refreshes
	// planner statistics.
	Check(ctx context.Context) (CheckResult, error)
}
