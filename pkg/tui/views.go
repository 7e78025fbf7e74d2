package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/karnwit/internlog/pkg/aggregate"
	"github.com/karnwit/internlog/pkg/calendargrid"
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/theme"
)

// View renders the active layout with any open modal below it.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.th.Title.Render(m.tr.T("internship_log")))
	if m.svc != nil && m.svc.UserID != "" {
		b.WriteString(m.th.Muted.Render("  " + m.tr.T("welcome_back") + ", " + m.svc.UserID))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.th.Muted.Render("..."))
	case len(m.snapshot) == 0:
		b.WriteString(m.th.Muted.Render(m.tr.T("no_logs") + " " + m.tr.T("start_adding")))
	default:
		switch m.view {
		case viewGrid:
			b.WriteString(m.renderGrid())
		case viewTable:
			b.WriteString(m.renderTable())
		case viewCalendar:
			b.WriteString(m.renderCalendar())
		default:
			b.WriteString(m.renderList())
		}
	}

	switch m.modal {
	case modalDetail:
		b.WriteString("\n\n" + m.renderDetail())
	case modalForm:
		b.WriteString("\n\n" + m.renderForm())
	case modalConfirm:
		b.WriteString("\n\n" + m.renderConfirm())
	}

	b.WriteString("\n\n" + m.renderFooter())
	return b.String()
}

func (m Model) renderStats() string {
	card := func(label, value string) string {
		return m.th.StatCard.Render(m.th.InputLabel.Render(label) + "\n" + m.th.Header.Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(m.tr.T("total_hours"), formatHours(m.stats.TotalHours)),
		card(m.tr.T("work_days"), formatHours(m.stats.TotalDays)),
		card(m.tr.T("months"), fmt.Sprintf("%.2f", m.stats.TotalMonths)),
		card(m.tr.T("days_off"), strconv.Itoa(m.stats.DaysOff)),
	)
	rangeLine := m.stats.DateRange
	if rangeLine == aggregate.NoRecords {
		rangeLine = m.tr.T("no_records")
	}
	return cards + "\n" + m.th.Muted.Render(m.tr.T("total_internship_time")+": "+rangeLine)
}

func (m Model) renderList() string {
	var lines []string
	for i, e := range m.snapshot {
		marker := "  "
		if i == m.cursor {
			marker = "→ "
		}
		check := "[ ]"
		if m.sel.Has(e.ID) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s  %s  %s", marker, check, e.DisplayDate(), m.hoursLabel(e), e.Summary())
		switch {
		case i == m.cursor:
			line = m.th.Selected.Render(line)
		case e.IsHoliday():
			line = m.th.Holiday.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderGrid() string {
	const perRow = 3
	var rows []string
	var row []string
	for i, e := range m.snapshot {
		title := e.DisplayDate()
		if i == m.cursor {
			title = "→ " + title
		}
		if m.sel.Has(e.ID) {
			title += " [x]"
		}
		body := title + "\n" + m.hoursLabel(e) + "\n" + truncate(e.Summary(), 24)
		card := m.th.StatCard.Render(body)
		if i == m.cursor {
			card = m.th.StatCard.BorderForeground(m.th.Accent.GetForeground()).Render(body)
		}
		row = append(row, card)
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTable() string {
	header := fmt.Sprintf("    %-12s %-14s %-36s %s",
		m.tr.T("date"), m.tr.T("hours"), m.tr.T("description"), m.tr.T("work_link"))
	lines := []string{m.th.Header.Render(header)}
	for i, e := range m.snapshot {
		marker := "  "
		if i == m.cursor {
			marker = "→ "
		}
		check := " "
		if m.sel.Has(e.ID) {
			check = "x"
		}
		line := fmt.Sprintf("%s%s %-12s %-14s %-36s %s",
			marker, check, e.DisplayDate(), m.hoursLabel(e), truncate(e.Summary(), 36), e.WorkLink)
		if i == m.cursor {
			line = m.th.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCalendar() string {
	grid := calendargrid.Build(m.calYear, m.calMonth, m.snapshot)
	today := time.Now()

	title := fmt.Sprintf("%s %d", m.calMonth.String(), m.calYear)
	lines := []string{
		m.th.Header.Render(title),
		m.th.Muted.Render(" Su  Mo  Tu  We  Th  Fr  Sa"),
	}

	for week := 0; week < calendargrid.Cells/7; week++ {
		var cells []string
		for day := 0; day < 7; day++ {
			c := grid[week*7+day]
			if c.Padding {
				cells = append(cells, "   ")
				continue
			}
			label := fmt.Sprintf("%3d", c.Day)
			isToday := today.Year() == m.calYear && today.Month() == m.calMonth && today.Day() == c.Day
			switch {
			case isToday:
				label = m.th.TodayMarker.Render(label)
			case len(c.Entries) > 0 && c.Entries[0].IsHoliday():
				label = m.th.Holiday.Render(label)
			case len(c.Entries) > 0:
				label = m.th.Accent.Render(label)
			}
			cells = append(cells, label)
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	// Entry lines for the month, first match plus a count per day.
	for week := 0; week < calendargrid.Cells/7; week++ {
		for day := 0; day < 7; day++ {
			c := grid[week*7+day]
			if c.Padding || len(c.Entries) == 0 {
				continue
			}
			line := fmt.Sprintf("  %2d  %s", c.Day, truncate(c.Entries[0].Summary(), 40))
			if extra := len(c.Entries) - 1; extra > 0 {
				line += m.th.Muted.Render(fmt.Sprintf(" (+%d)", extra))
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	e := m.entryByID(m.detailID)
	if e == nil {
		return ""
	}
	width := modalWidth(m.termWidth)

	var b strings.Builder
	b.WriteString(m.th.ModalTitle.Render(m.tr.T("log_details")) + "\n\n")
	b.WriteString(m.th.InputLabel.Render(m.tr.T("date")) + "  " + e.DisplayDate() + "\n")
	b.WriteString(m.th.InputLabel.Render(m.tr.T("status")) + "  ")
	if e.IsHoliday() {
		b.WriteString(m.th.Holiday.Render(m.tr.T("status_holiday")))
	} else {
		b.WriteString(m.tr.T("status_work") + "  " + m.hoursLabel(e))
	}
	b.WriteString("\n\n")
	b.WriteString(m.th.InputLabel.Render(m.tr.T("work_description")) + "\n")
	b.WriteString(wordwrap.String(e.Description, width-6) + "\n")
	if e.WorkLink != "" {
		b.WriteString("\n" + m.th.InputLabel.Render(m.tr.T("view_work")) + "  " + m.th.Accent.Render(e.WorkLink) + "\n")
	}
	b.WriteString("\n" + m.th.Help.Render("e "+m.tr.T("edit_entry")+" · d "+m.tr.T("delete")+" · esc "+m.tr.T("close")))

	return m.th.Modal.Width(width).Render(b.String())
}

func (m Model) renderForm() string {
	f := m.form
	width := modalWidth(m.termWidth)

	title := m.tr.T("new_entry")
	action := m.tr.T("save_entry")
	if f.editingID != "" {
		title = m.tr.T("edit_entry")
		action = m.tr.T("save_changes")
	}

	label := func(field int, key string) string {
		s := m.th.InputLabel.Render(m.tr.T(key))
		if f.focus == field {
			s = m.th.Accent.Render("» ") + s
		} else {
			s = "  " + s
		}
		return s
	}

	hoursLine := f.presetLabel(&m)
	if f.preset == hoursCustom {
		hoursLine += "  " + f.custom.View()
	}

	var b strings.Builder
	b.WriteString(m.th.ModalTitle.Render(title) + "\n\n")
	b.WriteString(label(fieldDate, "date") + "\n" + f.date.View() + "\n\n")
	b.WriteString(label(fieldHours, "hours") + "  ←/→\n" + hoursLine + "\n\n")
	b.WriteString(label(fieldDescription, "description") + "\n" + f.desc.View() + "\n\n")
	b.WriteString(label(fieldLink, "work_link") + "\n" + f.link.View() + "\n")
	if f.err != nil {
		b.WriteString("\n" + m.th.Error.Render(f.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.th.Help.Render("enter "+action+" · esc "+m.tr.T("cancel")))

	return m.th.Modal.Width(width).Render(b.String())
}

func (m Model) renderConfirm() string {
	c := m.confirm
	width := modalWidth(m.termWidth)
	keyword := m.tr.T("confirm_keyword")

	var b strings.Builder
	b.WriteString(m.th.Error.Render(m.tr.T("confirm_delete_title")) + "\n\n")
	b.WriteString(wordwrap.String(m.tr.T("confirm_delete_msg"), width-6) + "\n")
	b.WriteString(m.th.Muted.Render(fmt.Sprintf("%s: %d", m.tr.T("selected"), len(c.ids))) + "\n\n")
	b.WriteString(m.tr.T("type_confirm") + "\n")
	b.WriteString(c.input.View() + "\n")
	if c.err != nil {
		b.WriteString("\n" + m.th.Error.Render(c.err.Error()) + "\n")
	}
	hint := m.tr.T("cancel") + ": esc"
	if c.armed(keyword) {
		hint = m.tr.T("delete") + ": enter · " + hint
	}
	b.WriteString("\n" + m.th.Help.Render(hint))

	return m.th.Modal.BorderForeground(m.th.Error.GetForeground()).Width(width).Render(b.String())
}

func (m Model) renderFooter() string {
	views := map[viewMode]string{
		viewList:     m.tr.T("view_list"),
		viewGrid:     m.tr.T("view_grid"),
		viewTable:    m.tr.T("view_table"),
		viewCalendar: m.tr.T("view_calendar"),
	}
	themeGlyphs := map[theme.Name]string{theme.Dark: "●", theme.Blue: "◆", theme.Light: "○"}
	parts := []string{views[m.view], themeGlyphs[m.th.Name] + " " + string(m.th.Name)}
	if n := m.sel.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %d", m.tr.T("selected"), n))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, "tab view · o "+m.tr.T("new_entry")+" · x "+m.tr.T("export_excel")+" · t/L theme/lang · q quit")
	return m.th.Help.Render(strings.Join(parts, "  |  "))
}

// hoursLabel shows the effective hours for an entry. Unrecorded hours display
// the daily default without being written back.
func (m Model) hoursLabel(e *entry.Entry) string {
	if e.IsHoliday() {
		return m.tr.T("holiday_leave")
	}
	hours := aggregate.DefaultDailyHours
	if e.HasHours() {
		hours = *e.Hours
	}
	return formatHours(hours) + " " + m.tr.T("hours_suffix")
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// modalWidth bounds modal overlays to a readable width.
func modalWidth(termWidth int) int {
	w := termWidth - 8
	if w < 40 {
		w = 40
	}
	if w > 76 {
		w = 76
	}
	return w
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
