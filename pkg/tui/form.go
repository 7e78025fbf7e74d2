package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/karnwit/internlog/pkg/app"
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/store"
)

// hoursPreset mirrors the quick picks of the entry form: a full day, a half
// day, holiday/leave, or a typed custom value.
type hoursPreset int

const (
	hoursFull hoursPreset = iota
	hoursHalf
	hoursHoliday
	hoursCustom
)

const (
	fieldDate = iota
	fieldHours
	fieldDescription
	fieldLink
	fieldCount
)

type formState struct {
	editingID string

	date   textinput.Model
	preset hoursPreset
	custom textinput.Model
	desc   textarea.Model
	link   textinput.Model

	focus int
	err   error
}

func newFormState(m *Model) formState {
	date := textinput.New()
	date.Placeholder = entry.DateLayout
	date.CharLimit = 10

	custom := textinput.New()
	custom.Placeholder = "0.0"
	custom.CharLimit = 5

	desc := textarea.New()
	desc.Placeholder = m.tr.T("placeholder_desc")
	desc.CharLimit = 2000
	desc.SetHeight(4)

	link := textinput.New()
	link.Placeholder = "https://"
	link.CharLimit = 500

	return formState{
		date:   date,
		custom: custom,
		desc:   desc,
		link:   link,
	}
}

func (f *formState) resize(termWidth int) {
	w := termWidth - 12
	if w < 24 {
		w = 24
	}
	if w > 72 {
		w = 72
	}
	f.desc.SetWidth(w)
}

func (f *formState) blur() {
	f.date.Blur()
	f.custom.Blur()
	f.desc.Blur()
	f.link.Blur()
	f.err = nil
}

// openForm opens the entry form, prefilled from e when editing. A nil e
// starts a new entry dated today.
func (m *Model) openForm(e *entry.Entry) tea.Cmd {
	m.closeModal()
	m.modal = modalForm
	f := &m.form
	f.err = nil

	if e == nil {
		f.editingID = ""
		date := m.lastDate
		if date == "" {
			date = time.Now().Format(entry.DateLayout)
		}
		f.date.SetValue(date)
		f.preset = hoursFull
		f.custom.SetValue("")
		f.desc.SetValue("")
		f.link.SetValue("")
	} else {
		f.editingID = e.ID
		f.date.SetValue(e.Date)
		f.preset, f.custom = presetFor(e.Hours, f.custom)
		f.desc.SetValue(e.Description)
		f.link.SetValue(e.WorkLink)
	}

	f.focus = fieldDate
	return f.focusField()
}

// presetFor maps stored hours back onto a form preset. Unrecorded hours show
// as custom with an empty value so saving keeps them unrecorded.
func presetFor(hours *float64, custom textinput.Model) (hoursPreset, textinput.Model) {
	if hours == nil {
		custom.SetValue("")
		return hoursCustom, custom
	}
	switch *hours {
	case 8:
		return hoursFull, custom
	case 4:
		return hoursHalf, custom
	case 0:
		return hoursHoliday, custom
	default:
		custom.SetValue(strconv.FormatFloat(*hours, 'f', -1, 64))
		return hoursCustom, custom
	}
}

func (f *formState) focusField() tea.Cmd {
	f.date.Blur()
	f.custom.Blur()
	f.desc.Blur()
	f.link.Blur()

	switch f.focus {
	case fieldDate:
		return f.date.Focus()
	case fieldHours:
		if f.preset == hoursCustom {
			return f.custom.Focus()
		}
		return nil
	case fieldDescription:
		return f.desc.Focus()
	default:
		return f.link.Focus()
	}
}

func (m *Model) updateForm(msg tea.KeyPressMsg) tea.Cmd {
	f := &m.form

	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "tab", "down":
		if f.focus == fieldDescription && msg.String() == "down" {
			break // let the textarea move its own cursor
		}
		f.focus = (f.focus + 1) % fieldCount
		return f.focusField()
	case "shift+tab", "up":
		if f.focus == fieldDescription && msg.String() == "up" {
			break
		}
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		return f.focusField()
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		// Enter inserts a newline only inside the description.
		if f.focus != fieldDescription {
			return m.submitForm()
		}
	}

	if f.focus == fieldHours {
		switch msg.String() {
		case "left":
			f.preset = (f.preset + 3) % 4
			return f.focusField()
		case "right":
			f.preset = (f.preset + 1) % 4
			return f.focusField()
		}
		if f.preset == hoursCustom {
			var cmd tea.Cmd
			f.custom, cmd = f.custom.Update(msg)
			return cmd
		}
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldLink:
		f.link, cmd = f.link.Update(msg)
	}
	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	f := &m.form

	var hours *float64
	switch f.preset {
	case hoursFull:
		hours = entry.Hours(8)
	case hoursHalf:
		hours = entry.Hours(4)
	case hoursHoliday:
		hours = entry.Hours(0)
	case hoursCustom:
		raw := strings.TrimSpace(f.custom.Value())
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				f.err = &store.ValidationError{Field: "hours", Reason: "not a number"}
				return nil
			}
			hours = &v
		}
	}

	fields := app.Fields{
		Date:        strings.TrimSpace(f.date.Value()),
		Hours:       hours,
		Description: f.desc.Value(),
		WorkLink:    strings.TrimSpace(f.link.Value()),
	}

	svc, ctx, id := m.svc, m.ctx, f.editingID
	return func() tea.Msg {
		var err error
		if id == "" {
			_, err = svc.Create(ctx, fields)
		} else {
			_, err = svc.Update(ctx, id, fields)
		}
		return formResultMsg{err: err}
	}
}

func (f *formState) presetLabel(m *Model) string {
	switch f.preset {
	case hoursFull:
		return "8 " + m.tr.T("hours_suffix")
	case hoursHalf:
		return "4 " + m.tr.T("hours_suffix")
	case hoursHoliday:
		return m.tr.T("holiday_leave")
	default:
		return m.tr.T("custom")
	}
}
