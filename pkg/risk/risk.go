// Package risk derives risk ratings from consequence and likelihood scores.
//
// The persisted rating is an additive banding of the two scores. Matrix
// is a descriptive table shown to planners and is not used for storage.
package risk

import "fmt"

// Rating is a risk category.
type Rating string

const (
	Low      Rating = "Low"
	Moderate Rating = "Moderate"
	High     Rating = "High"
	Extreme  Rating = "Extreme"
)

// Score ranges accepted by Compute.
const (
	MinConsequence = 1
	MaxConsequence = 5
	MinLikelihood  = 1
	MaxLikelihood  = 6
)

// Severity orders ratings from 0 (Low) to 3 (Extreme).
func (r Rating) Severity() int {
	switch r {
	case Low:
		return 0
	case Moderate:
		return 1
	case High:
		return 2
	case Extreme:
		return 3
	default:
		return -1
	}
}

// Band maps the sum of consequence and likelihood scores to a rating.
func Band(sum int) Rating {
	switch {
	case sum <= 3:
		return Low
	case sum <= 6:
		return Moderate
	case sum <= 9:
		return High
	default:
		return Extreme
	}
}

// Compute rates a consequence score (1-5) against a likelihood
// score (1-6).
func Compute(consequence, likelihood int) (Rating, error) {
	if consequence < MinConsequence || consequence > MaxConsequence {
		return "", fmt.Errorf(
			"consequence score %d is outside %d-%d",
			consequence, MinConsequence, MaxConsequence,
		)
	}
	if likelihood < MinLikelihood || likelihood > MaxLikelihood {
		return "", fmt.Errorf(
			"likelihood score %d is outside %d-%d",
			likelihood, MinLikelihood, MaxLikelihood,
		)
	}
	return Band(consequence + likelihood), nil
}
