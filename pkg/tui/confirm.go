package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// confirmState guards the bulk delete: the user must type the localized
// keyword before the delete is allowed to run.
type confirmState struct {
	ids   []string
	input textinput.Model
	err   error
}

func newConfirmState(m *Model) confirmState {
	input := textinput.New()
	input.Placeholder = m.tr.T("confirm_keyword")
	input.CharLimit = 32
	return confirmState{input: input}
}

func (c *confirmState) reset() {
	c.ids = nil
	c.input.SetValue("")
	c.input.Blur()
	c.err = nil
}

// armed reports whether the typed text matches the required keyword.
func (c *confirmState) armed(keyword string) bool {
	return strings.TrimSpace(c.input.Value()) == keyword
}

func (m *Model) openConfirm(ids []string) tea.Cmd {
	m.closeModal()
	m.modal = modalConfirm
	m.confirm.ids = append([]string(nil), ids...)
	m.confirm.input.SetValue("")
	m.confirm.input.Placeholder = m.tr.T("confirm_keyword")
	return m.confirm.input.Focus()
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg) tea.Cmd {
	c := &m.confirm

	switch msg.String() {
	case "esc":
		m.closeModal()
		return nil
	case "enter":
		if !c.armed(m.tr.T("confirm_keyword")) {
			// Enter does nothing until the keyword matches.
			return nil
		}
		svc, ctx, ids := m.svc, m.ctx, append([]string(nil), c.ids...)
		return func() tea.Msg {
			if err := svc.DeleteMany(ctx, ids); err != nil {
				return deleteResultMsg{err: err}
			}
			return deleteResultMsg{count: len(ids)}
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (m *Model) updateDetail(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.closeModal()
	case "e", "i":
		// Editing replaces the detail modal; only one can be open.
		if e := m.entryByID(m.detailID); e != nil {
			return m.openForm(e)
		}
		m.closeModal()
	case "d":
		id := m.detailID
		return m.openConfirm([]string{id})
	}
	return nil
}
