// Package printers renders entries and summary stats for the plain CLI
// commands. Colors go through fatih/color so NO_COLOR and pipes behave.
package printers

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/karnwit/internlog/pkg/aggregate"
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/i18n"
)

type PrettyPrint struct {
	ShowID bool
	Tr     *i18n.Translator
}

func (pp *PrettyPrint) t(key string) string {
	return pp.Tr.T(key)
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

// Entries prints the snapshot as a table, newest first.
func (pp *PrettyPrint) Entries(entries []*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(color.Output, " "+pp.t("no_logs"))
		return
	}

	bold := color.New(color.Bold)
	holiday := color.New(color.FgHiYellow, color.Italic)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.Separator = "  "

	header := []interface{}{
		bold.Sprint(pp.t("date")),
		bold.Sprint(pp.t("hours")),
		bold.Sprint(pp.t("description")),
		bold.Sprint(pp.t("work_link")),
	}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, e := range entries {
		hours := pp.HoursLabel(e)
		if e.IsHoliday() {
			hours = holiday.Sprint(hours)
		}
		row := []interface{}{e.DisplayDate(), hours, e.Summary(), faint.Sprint(e.WorkLink)}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Stats prints the aggregate summary block.
func (pp *PrettyPrint) Stats(s aggregate.Stats) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(pp.t("total_hours")), formatFloat(s.TotalHours))
	tbl.AddRow(bold.Sprint(pp.t("work_days")), formatFloat(s.TotalDays))
	tbl.AddRow(bold.Sprint(pp.t("months")), fmt.Sprintf("%.2f", s.TotalMonths))
	tbl.AddRow(bold.Sprint(pp.t("days_off")), strconv.Itoa(s.DaysOff))

	dateRange := s.DateRange
	if dateRange == aggregate.NoRecords {
		dateRange = pp.t("no_records")
	}
	tbl.AddRow(bold.Sprint(pp.t("total_internship_time")), dateRange)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// HoursLabel renders the effective hours of an entry. Unrecorded hours show
// the daily default without being written back.
func (pp *PrettyPrint) HoursLabel(e *entry.Entry) string {
	if e.IsHoliday() {
		return pp.t("holiday_leave")
	}
	hours := aggregate.DefaultDailyHours
	if e.HasHours() {
		hours = *e.Hours
	}
	return formatFloat(hours) + " " + pp.t("hours_suffix")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
