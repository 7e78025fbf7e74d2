// Package aggregate derives the summary metrics shown above the log views.
// It is a pure function of the snapshot and is recomputed in full on every
// change; the record counts involved are a single internship, so there is no
// need for incremental updates.
package aggregate

import (
	"time"

	"github.com/karnwit/internlog/pkg/entry"
)

const (
	// DefaultDailyHours is what an entry without recorded hours contributes
	// to the totals. It is an aggregation default only and is never written
	// back to the entry.
	DefaultDailyHours = 8.0

	// WorkingDaysPerMonth converts day totals into months. Fixed 22-day
	// convention; a policy constant, not derived from the calendar.
	WorkingDaysPerMonth = 22.0

	// NoRecords is the date-range sentinel for an empty snapshot.
	NoRecords = "No records"
)

// Stats holds the derived metrics for one snapshot.
type Stats struct {
	TotalHours  float64
	TotalDays   float64
	TotalMonths float64
	DaysOff     int
	DateRange   string
}

// Compute derives Stats from the snapshot. Entries without recorded hours
// count as DefaultDailyHours; only an explicit zero counts as a day off.
func Compute(snapshot []*entry.Entry) Stats {
	s := Stats{DateRange: NoRecords}
	if len(snapshot) == 0 {
		return s
	}

	minDate, maxDate := "", ""
	for _, e := range snapshot {
		if e == nil {
			continue
		}
		if e.HasHours() {
			s.TotalHours += *e.Hours
			if *e.Hours == 0 {
				s.DaysOff++
			}
		} else {
			s.TotalHours += DefaultDailyHours
		}
		if e.Date == "" {
			continue
		}
		if minDate == "" || e.Date < minDate {
			minDate = e.Date
		}
		if maxDate == "" || e.Date > maxDate {
			maxDate = e.Date
		}
	}

	s.TotalDays = s.TotalHours / DefaultDailyHours
	s.TotalMonths = s.TotalDays / WorkingDaysPerMonth
	if minDate != "" {
		s.DateRange = formatDate(minDate) + " - " + formatDate(maxDate)
	}
	return s
}

func formatDate(date string) string {
	d, err := time.Parse(entry.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(entry.DisplayDateLayout)
}
