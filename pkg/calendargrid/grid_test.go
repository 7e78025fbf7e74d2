package calendargrid

import (
	"testing"
	"time"

	"github.com/karnwit/internlog/pkg/entry"
)

func TestBuildAlwaysHas42Cells(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2026, time.December, 31},
	}

	for _, tc := range months {
		grid := Build(tc.year, tc.month, nil)
		if len(grid) != Cells {
			t.Fatalf("%v %d: got %d cells, want %d", tc.month, tc.year, len(grid), Cells)
		}

		real := 0
		for _, c := range grid {
			if !c.Padding {
				real++
			}
		}
		if real != tc.days {
			t.Fatalf("%v %d: %d non-padding cells, want %d", tc.month, tc.year, real, tc.days)
		}
	}
}

func TestBuildLeadingOffsetMatchesWeekday(t *testing.T) {
	// 2024-03-01 is a Friday, so five padding cells lead the grid.
	grid := Build(2024, time.March, nil)
	for i := 0; i < 5; i++ {
		if !grid[i].Padding {
			t.Fatalf("cell %d should be leading padding", i)
		}
	}
	if grid[5].Padding || grid[5].Day != 1 {
		t.Fatalf("cell 5 should be day 1, got %+v", grid[5])
	}
}

func TestBuildAnnotatesMatchingEntries(t *testing.T) {
	first := entry.New("u1", "2024-01-10", "first")
	second := entry.New("u1", "2024-01-10", "second")
	other := entry.New("u1", "2024-02-10", "wrong month")

	grid := Build(2024, time.January, []*entry.Entry{first, second, other})

	var day10 *Cell
	for i := range grid {
		if grid[i].Day == 10 {
			day10 = &grid[i]
			break
		}
	}
	if day10 == nil {
		t.Fatalf("day 10 missing from grid")
	}
	if len(day10.Entries) != 2 {
		t.Fatalf("day 10 has %d entries, want 2", len(day10.Entries))
	}
	if day10.Entries[0].Description != "first" {
		t.Fatalf("entries must keep snapshot order, got %q first", day10.Entries[0].Description)
	}

	for _, c := range grid {
		if c.Day != 10 && len(c.Entries) != 0 {
			t.Fatalf("day %d unexpectedly annotated", c.Day)
		}
	}
}

func TestBuildPaddingCellsCarryNothing(t *testing.T) {
	grid := Build(2024, time.February, []*entry.Entry{entry.New("u1", "2024-02-29", "leap day")})
	for _, c := range grid {
		if c.Padding && (c.Day != 0 || len(c.Entries) != 0) {
			t.Fatalf("padding cell carries data: %+v", c)
		}
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Fatalf("DaysIn(2024, Feb) = %d", got)
	}
	if got := DaysIn(2100, time.February); got != 28 {
		t.Fatalf("DaysIn(2100, Feb) = %d (2100 is not a leap year)", got)
	}
}
