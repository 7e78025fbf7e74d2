package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karnwit/internlog/pkg/entry"
)

func withHours(date string, hours float64) *entry.Entry {
	e := entry.New("u1", date, "work")
	e.Hours = entry.Hours(hours)
	return e
}

func TestComputeMixedSnapshot(t *testing.T) {
	snapshot := []*entry.Entry{
		withHours("2024-01-10", 8),
		withHours("2024-01-11", 0),
		withHours("2024-01-12", 4),
	}

	s := Compute(snapshot)

	assert.Equal(t, 12.0, s.TotalHours)
	assert.Equal(t, 1.5, s.TotalDays)
	assert.InDelta(t, 0.068, s.TotalMonths, 0.001)
	assert.Equal(t, 1, s.DaysOff)
	assert.Equal(t, "10 Jan 2024 - 12 Jan 2024", s.DateRange)
}

func TestComputeEmptySnapshot(t *testing.T) {
	s := Compute(nil)

	assert.Zero(t, s.TotalHours)
	assert.Zero(t, s.TotalDays)
	assert.Zero(t, s.TotalMonths)
	assert.Zero(t, s.DaysOff)
	assert.Equal(t, NoRecords, s.DateRange)
}

func TestComputeUnrecordedHoursDefault(t *testing.T) {
	snapshot := []*entry.Entry{
		entry.New("u1", "2024-02-01", "no hours recorded"),
		withHours("2024-02-02", 0),
	}

	s := Compute(snapshot)

	assert.Equal(t, DefaultDailyHours, s.TotalHours)
	assert.Equal(t, 1, s.DaysOff, "only the explicit zero is a day off")
	assert.Nil(t, snapshot[0].Hours, "aggregation must not backfill hours")
}

func TestComputeTotalsMatchSum(t *testing.T) {
	snapshot := []*entry.Entry{
		withHours("2024-03-01", 7.5),
		withHours("2024-03-04", 8),
		entry.New("u1", "2024-03-05", "default day"),
	}

	s := Compute(snapshot)

	want := 7.5 + 8 + DefaultDailyHours
	assert.Equal(t, want, s.TotalHours)
	assert.Equal(t, want/DefaultDailyHours, s.TotalDays)
	assert.False(t, math.IsNaN(s.TotalMonths))
}

func TestComputeSingleDayRange(t *testing.T) {
	s := Compute([]*entry.Entry{withHours("2024-05-20", 8)})
	assert.Equal(t, "20 May 2024 - 20 May 2024", s.DateRange)
}
