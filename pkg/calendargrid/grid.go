// Package calendargrid lays out one month of entries as a fixed 6x7 grid of
// day cells for the calendar view.
package calendargrid

import (
	"time"

	"github.com/karnwit/internlog/pkg/entry"
)

// Cells is the fixed grid size: six weeks of seven days. Months that need
// fewer rows are padded so the layout never jumps when paging.
const Cells = 42

// Cell is one grid position. Padding cells belong to an adjacent month and
// carry no day number or entries.
type Cell struct {
	// Day is the day of month, 1-based. Zero for padding cells.
	Day int

	// Padding marks cells outside the current month; they are non-interactive.
	Padding bool

	// Entries holds every entry whose date falls on this day, in snapshot
	// order. Rendering shows the first entry plus a count for the rest.
	Entries []*entry.Entry
}

// Build produces the 42-cell grid for the given month. Months are 1-based via
// time.Month. Weeks start on Sunday, so the leading padding count is the
// weekday of the 1st. Matching is exact calendar-date equality against the
// snapshot; a linear scan per day is fine at internship scale.
func Build(year int, month time.Month, snapshot []*entry.Entry) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	byDate := make(map[string][]*entry.Entry, len(snapshot))
	for _, e := range snapshot {
		if e == nil || e.Date == "" {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	grid := make([]Cell, Cells)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(entry.DateLayout)
		grid[offset+day-1] = Cell{
			Day:     day,
			Entries: byDate[date],
		}
	}
	for i := range grid {
		if grid[i].Day == 0 {
			grid[i].Padding = true
		}
	}
	return grid
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
