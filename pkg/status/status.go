// Package status derives the current lifecycle status of projects from
// their append-only status history.
package status

import (
	"cmp"
	"slices"
	"time"
)

// Event is one entry of a project's status history.
type Event struct {
	ID        uint
	ProjectID uint
	StatusID  uint
	Code      string
	Date      time.Time
	Seq       int64
	Comments  string
}

// Compare orders events by date, then by sequence number.
func Compare(a, b Event) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

// Current returns the event with the latest date. Events sharing the
// latest date are resolved by the highest Seq.
func Current(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	return slices.MaxFunc(events, Compare), true
}

// CurrentByProject returns the current event of every project present
// in events.
func CurrentByProject(events []Event) map[uint]Event {
	res := make(map[uint]Event)
	for _, e := range events {
		cur, ok := res[e.ProjectID]
		if !ok || Compare(e, cur) > 0 {
			res[e.ProjectID] = e
		}
	}
	return res
}

// Timeline returns a copy of events sorted from the oldest to the
// current one.
func Timeline(events []Event) []Event {
	res := slices.Clone(events)
	slices.SortFunc(res, Compare)
	return res
}

// CountByCode counts current statuses per status code.
func CountByCode(current map[uint]Event) map[string]int {
	res := make(map[string]int)
	for _, e := range current {
		res[e.Code]++
	}
	return res
}
