package scoring

import "strings"

// Rule maps criterion names that contain any of Keywords to a bucket.
// Keywords are upper case.
type Rule struct {
	Keywords []string
	Bucket   Bucket
}

// DefaultRules are checked in order, the first matching rule wins.
var DefaultRules = []Rule{
	{Keywords: []string{"WHS", "SAFETY"}, Bucket: WHS},
	{Keywords: []string{"WATER"}, Bucket: WaterSavings},
	{Keywords: []string{"CUSTOMER"}, Bucket: Customer},
	{Keywords: []string{"MAINTENANCE"}, Bucket: Maintenance},
	{Keywords: []string{"FINANCIAL", "COST", "ROI"}, Bucket: Financial},
}

// Matcher assigns criteria to buckets by substring rules.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a Matcher. Nil rules means DefaultRules.
func NewMatcher(rules []Rule) Matcher {
	if rules == nil {
		rules = DefaultRules
	}
	return Matcher{rules: rules}
}

// Match returns the bucket of a criterion name. Names matching no rule
// get the Average bucket.
func (m Matcher) Match(name string) Bucket {
	name = strings.ToUpper(name)
	for _, r := range m.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(name, kw) {
				return r.Bucket
			}
		}
	}
	return Average
}
