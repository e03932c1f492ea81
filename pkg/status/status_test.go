package status_test

import (
	"testing"
	"time"

	"github.com/odysseus-imc/capexdb/pkg/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrent(t *testing.T) {
	_, ok := status.Current(nil)
	assert.False(t, ok)

	events := []status.Event{
		{ID: 1, Code: "PLANNED", Date: day(1), Seq: 1},
		{ID: 2, Code: "DESIGN", Date: day(10), Seq: 2},
		// earlier date inserted later does not become current
		{ID: 3, Code: "ON_HOLD", Date: day(5), Seq: 3},
	}
	cur, ok := status.Current(events)
	require.True(t, ok)
	assert.Equal(t, "DESIGN", cur.Code)

	// same date, later insert wins
	events = append(events, status.Event{ID: 4, Code: "APPROVED", Date: day(10), Seq: 4})
	cur, _ = status.Current(events)
	assert.Equal(t, "APPROVED", cur.Code)
}

func TestCurrentByProject(t *testing.T) {
	events := []status.Event{
		{ProjectID: 1, Code: "PLANNED", Date: day(1), Seq: 1},
		{ProjectID: 2, Code: "PLANNED", Date: day(1), Seq: 1},
		{ProjectID: 1, Code: "IN_PROGRESS", Date: day(3), Seq: 2},
		{ProjectID: 2, Code: "COMPLETED", Date: day(2), Seq: 2},
		{ProjectID: 2, Code: "DESIGN", Date: day(2), Seq: 3},
		{ProjectID: 3, Code: "COMPLETED", Date: day(9), Seq: 1},
	}

	cur := status.CurrentByProject(events)
	require.Len(t, cur, 3)
	assert.Equal(t, "IN_PROGRESS", cur[1].Code)
	assert.Equal(t, "DESIGN", cur[2].Code)
	assert.Equal(t, "COMPLETED", cur[3].Code)

	counts := status.CountByCode(cur)
	assert.Equal(t, map[string]int{"IN_PROGRESS": 1, "DESIGN": 1, "COMPLETED": 1}, counts)
}

func TestTimeline(t *testing.T) {
	events := []status.Event{
		{ID: 3, Date: day(5), Seq: 3},
		{ID: 1, Date: day(1), Seq: 1},
		{ID: 2, Date: day(5), Seq: 2},
	}
	res := status.Timeline(events)
	ids := []uint{res[0].ID, res[1].ID, res[2].ID}
	assert.Equal(t, []uint{1, 2, 3}, ids)
	assert.Equal(t, uint(3), events[0].ID, "input is not modified")
}
