// Package scoring computes priority totals and ranks of CAPEX projects.
//
// Two totals coexist for the same stored field. FlatTotal is written when
// a single project's scores are entered or edited. WeightedTotal is written
// for every asset when the criterion table changes. The stored value
// therefore reflects whichever path ran last.
package scoring

import (
	"fmt"
	"math"
)

// Bucket is one of the five fixed score components. Average stands for
// the mean of all five and is used for criteria that match no bucket.
type Bucket int

const (
	WHS Bucket = iota
	WaterSavings
	Customer
	Maintenance
	Financial
	Average
)

var bucketNames = [...]string{
	"whs", "water_savings", "customer", "maintenance", "financial", "average",
}

// String returns the column-style name of the bucket.
func (b Bucket) String() string {
	if b < 0 || int(b) >= len(bucketNames) {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Max returns the upper bound of a component, zero for Average.
func (b Bucket) Max() float64 {
	switch b {
	case WHS, Customer:
		return 30
	case WaterSavings:
		return 20
	case Maintenance, Financial:
		return 10
	default:
		return 0
	}
}

// Buckets lists the five components in storage order.
var Buckets = []Bucket{WHS, WaterSavings, Customer, Maintenance, Financial}

// Components are the raw scores of an asset.
type Components struct {
	WHS          float64
	WaterSavings float64
	Customer     float64
	Maintenance  float64
	Financial    float64
}

// Value returns the score of a bucket.
func (c Components) Value(b Bucket) float64 {
	switch b {
	case WHS:
		return c.WHS
	case WaterSavings:
		return c.WaterSavings
	case Customer:
		return c.Customer
	case Maintenance:
		return c.Maintenance
	case Financial:
		return c.Financial
	default:
		return c.Average()
	}
}

// Average is the mean of the five component scores.
func (c Components) Average() float64 {
	return FlatTotal(c) / float64(len(Buckets))
}

// Clamp replaces negative scores with zero. It returns the clamped
// components and the buckets whose value exceeds the bucket maximum.
// Values above the maximum are kept as given.
func (c Components) Clamp() (Components, []Bucket) {
	var over []Bucket
	vals := []*float64{
		&c.WHS, &c.WaterSavings, &c.Customer, &c.Maintenance, &c.Financial,
	}
	for i, v := range vals {
		if *v < 0 || math.IsNaN(*v) {
			*v = 0
		}
		if *v > Buckets[i].Max() {
			over = append(over, Buckets[i])
		}
	}
	return c, over
}

// FlatTotal is the unweighted sum of the five components.
func FlatTotal(c Components) float64 {
	return c.WHS + c.WaterSavings + c.Customer + c.Maintenance + c.Financial
}
