package scoring

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Weight is a criterion as seen by the weighted recompute.
type Weight struct {
	Name      string
	WeightPct float64
}

// WeightedTotal adds value*weight/100 for every criterion, where value
// is the component selected by the matcher.
func WeightedTotal(c Components, weights []Weight, m Matcher) float64 {
	var res float64
	for _, w := range weights {
		res += c.Value(m.Match(w.Name)) * (w.WeightPct / 100)
	}
	return res
}

// Scored is a project taking part in ranking. HasScore is false when
// the project's asset has no priority score row.
type Scored struct {
	ProjectID uint
	Total     float64
	HasScore  bool
}

// Rank assigns 1-based ranks by Total descending. Projects without a
// score come after all scored ones. Ties keep ascending ProjectID order,
// so the result does not depend on the input order.
func Rank(projects []Scored) map[uint]int {
	ps := slices.Clone(projects)
	slices.SortFunc(ps, func(a, b Scored) int {
		return cmp.Compare(a.ProjectID, b.ProjectID)
	})
	slices.SortStableFunc(ps, func(a, b Scored) int {
		if a.HasScore != b.HasScore {
			if a.HasScore {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Total, a.Total)
	})

	res := make(map[uint]int, len(ps))
	for i, v := range ps {
		res[v.ProjectID] = i + 1
	}
	return res
}

// WeightStatus describes how criterion weights relate to 100%.
type WeightStatus struct {
	Sum float64
}

// CheckWeights sums criterion weights.
func CheckWeights(weights []Weight) WeightStatus {
	var sum float64
	for _, w := range weights {
		sum += w.WeightPct
	}
	return WeightStatus{Sum: sum}
}

// Balanced is true when weights add up to 100%.
func (w WeightStatus) Balanced() bool {
	return math.Abs(w.Sum-100) < 1e-9
}

// String describes the weight sum for users.
func (w WeightStatus) String() string {
	switch {
	case w.Balanced():
		return fmt.Sprintf("Total weight %g%%", w.Sum)
	case w.Sum < 100:
		return fmt.Sprintf("Total weight %g%%, need %g%% more", w.Sum, 100-w.Sum)
	default:
		return fmt.Sprintf("Total weight %g%%, exceeds by %g%%", w.Sum, w.Sum-100)
	}
}
