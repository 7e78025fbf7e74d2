// Package tui is the interactive log screen: a live view over the current
// user's entries with list, grid, table, and calendar layouts, an entry form,
// and a guarded bulk delete.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/karnwit/internlog/pkg/aggregate"
	"github.com/karnwit/internlog/pkg/app"
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/export"
	"github.com/karnwit/internlog/pkg/i18n"
	"github.com/karnwit/internlog/pkg/logging"
	"github.com/karnwit/internlog/pkg/selection"
	"github.com/karnwit/internlog/pkg/store"
	"github.com/karnwit/internlog/pkg/theme"
)

type viewMode int

const (
	viewList viewMode = iota
	viewGrid
	viewTable
	viewCalendar
)

var viewOrder = []viewMode{viewList, viewGrid, viewTable, viewCalendar}

type modal int

const (
	modalNone modal = iota
	modalDetail
	modalForm
	modalConfirm
)

// Model contains the UI state.
type Model struct {
	svc    *app.Service
	cfg    store.Config
	ctx    context.Context
	cancel context.CancelFunc

	tr *i18n.Translator
	th theme.Theme

	snapshot []*entry.Entry
	stats    aggregate.Stats
	sel      *selection.Set

	view     viewMode
	cursor   int
	calYear  int
	calMonth time.Month

	modal    modal
	detailID string
	form     formState
	confirm  confirmState

	loading       bool
	querySurfaced bool
	status        string
	lastDate      string

	events <-chan store.Event

	termWidth  int
	termHeight int
}

// New creates the UI model backed by the Service. cfg carries the persisted
// theme and locale and may be nil in tests.
func New(svc *app.Service, cfg store.Config) Model {
	savedTheme, savedLocale := "", i18n.DefaultLang
	if cfg != nil {
		savedTheme = cfg.Theme()
		savedLocale = cfg.Locale()
	}
	tr, err := i18n.New(savedLocale)
	if err != nil {
		logging.L().WithError(err).Warn("load locale, falling back")
		tr, _ = i18n.New(i18n.DefaultLang)
	}

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()

	m := Model{
		svc:      svc,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
		tr:       tr,
		th:       theme.Load(savedTheme),
		sel:      selection.New(),
		view:     viewList,
		calYear:  now.Year(),
		calMonth: now.Month(),
		loading:  true,
	}
	m.form = newFormState(&m)
	m.confirm = newConfirmState(&m)
	return m
}

// Init kicks off the first snapshot load and the live subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), m.subscribe())
}

func (m Model) loadSnapshot() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		entries, err := svc.Snapshot(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{entries: entries}
	}
}

func (m Model) subscribe() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return subscribedMsg{ch: ch}
	}
}

func waitForEvent(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return storeEventMsg{event: ev, ok: ok}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.form.resize(msg.Width)

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			// A failed query settles the view on an empty snapshot; the
			// subscription keeps running and a later event can recover it.
			m.applySnapshot(nil)
			var qe *store.QueryError
			if errors.As(msg.err, &qe) && !m.querySurfaced {
				m.querySurfaced = true
				m.status = msg.err.Error()
			}
			logging.L().WithError(msg.err).Warn("snapshot load")
			break
		}
		m.querySurfaced = false
		m.applySnapshot(msg.entries)

	case subscribedMsg:
		m.events = msg.ch
		cmds = append(cmds, waitForEvent(msg.ch))

	case storeEventMsg:
		if !msg.ok {
			// Channel closed: the subscription ended with the context.
			break
		}
		cmds = append(cmds, m.loadSnapshot(), waitForEvent(m.events))

	case formResultMsg:
		if msg.err != nil {
			// Keep the form open with the user's input intact.
			m.form.err = msg.err
			break
		}
		// Keep the date for the next add; description and link start fresh.
		m.lastDate = m.form.date.Value()
		m.closeModal()
		m.status = m.tr.T("save_entry")

	case deleteResultMsg:
		if msg.err != nil {
			m.confirm.err = msg.err
			break
		}
		m.sel.Clear()
		m.closeModal()
		m.status = fmt.Sprintf("%s: %d", m.tr.T("delete"), msg.count)

	case exportResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			break
		}
		m.status = m.tr.T("export_excel") + ": " + msg.path

	case errMsg:
		m.status = msg.err.Error()

	case tea.KeyPressMsg:
		switch m.modal {
		case modalDetail:
			cmds = append(cmds, m.updateDetail(msg))
		case modalForm:
			cmds = append(cmds, m.updateForm(msg))
		case modalConfirm:
			cmds = append(cmds, m.updateConfirm(msg))
		default:
			cmds = append(cmds, m.updateNormal(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

// applySnapshot installs a new snapshot and everything derived from it.
func (m *Model) applySnapshot(entries []*entry.Entry) {
	m.snapshot = entries
	m.stats = aggregate.Compute(entries)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	m.sel.Prune(ids)

	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	// A record open in the detail modal may have vanished underneath us.
	if m.modal == modalDetail && m.entryByID(m.detailID) == nil {
		m.closeModal()
	}
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		cmds = append(cmds, tea.Quit)

	case "tab":
		m.view = nextView(m.view)
	case "1":
		m.view = viewList
	case "2":
		m.view = viewGrid
	case "3":
		m.view = viewTable
	case "4":
		m.view = viewCalendar

	case "j", "down":
		if m.cursor < len(m.snapshot)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if n := len(m.snapshot); n > 0 {
			m.cursor = n - 1
		}

	case "h", "left":
		if m.view == viewCalendar {
			m.calYear, m.calMonth = prevMonth(m.calYear, m.calMonth)
		}
	case "l", "right":
		if m.view == viewCalendar {
			m.calYear, m.calMonth = nextMonth(m.calYear, m.calMonth)
		}

	case " ", "space":
		if e := m.currentEntry(); e != nil {
			m.sel.Toggle(e.ID)
		}
	case "a":
		ids := make([]string, 0, len(m.snapshot))
		for _, e := range m.snapshot {
			ids = append(ids, e.ID)
		}
		m.sel.ToggleAll(ids)

	case "enter":
		if e := m.currentEntry(); e != nil {
			m.modal = modalDetail
			m.detailID = e.ID
		}
	case "o":
		cmds = append(cmds, m.openForm(nil))
	case "i":
		if e := m.currentEntry(); e != nil {
			cmds = append(cmds, m.openForm(e))
		}

	case "d":
		ids := m.sel.IDs()
		if len(ids) == 0 {
			if e := m.currentEntry(); e != nil {
				ids = []string{e.ID}
			}
		}
		if len(ids) > 0 {
			cmds = append(cmds, m.openConfirm(ids))
		}

	case "x":
		cmds = append(cmds, m.exportWorkbook())

	case "t":
		m.th = theme.Load(string(m.th.Name.Next()))
		if m.cfg != nil {
			if err := m.cfg.SetTheme(string(m.th.Name)); err != nil {
				logging.L().WithError(err).Warn("persist theme")
			}
		}
	case "L":
		m.toggleLanguage()

	case "r":
		cmds = append(cmds, m.loadSnapshot())
	}

	return tea.Batch(cmds...)
}

func (m *Model) toggleLanguage() {
	next := m.tr.Toggled()
	tr, err := i18n.New(next)
	if err != nil {
		logging.L().WithError(err).Warn("toggle locale")
		return
	}
	m.tr = tr
	if m.cfg != nil {
		if err := m.cfg.SetLocale(next); err != nil {
			logging.L().WithError(err).Warn("persist locale")
		}
	}
}

func (m *Model) exportWorkbook() tea.Cmd {
	snapshot := m.snapshot
	if len(snapshot) == 0 {
		status := m.tr.T("no_logs")
		return func() tea.Msg { return exportResultMsg{err: errors.New(status)} }
	}
	return func() tea.Msg {
		if err := export.WriteXLSX(export.Filename, snapshot); err != nil {
			return exportResultMsg{err: err}
		}
		return exportResultMsg{path: export.Filename}
	}
}

func (m *Model) currentEntry() *entry.Entry {
	if m.cursor < 0 || m.cursor >= len(m.snapshot) {
		return nil
	}
	return m.snapshot[m.cursor]
}

func (m *Model) entryByID(id string) *entry.Entry {
	for _, e := range m.snapshot {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m *Model) closeModal() {
	m.modal = modalNone
	m.detailID = ""
	m.form.blur()
	m.confirm.reset()
}

func nextView(v viewMode) viewMode {
	for i, mode := range viewOrder {
		if mode == v {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return viewList
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// Run starts the program and blocks until the user quits.
func Run(svc *app.Service, cfg store.Config) error {
	p := tea.NewProgram(New(svc, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
