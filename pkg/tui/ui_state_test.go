package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/karnwit/internlog/pkg/app"
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/store"
)

func newTestModel(data ...*entry.Entry) (Model, *fakePersistence) {
	fp := newFakePersistence()
	for _, e := range data {
		if err := fp.Create(e); err != nil {
			panic(err)
		}
	}
	svc := &app.Service{Persistence: fp, UserID: "praew"}
	return New(svc, &fakeConfig{theme: "dark", locale: "en"}), fp
}

func TestSnapshotMsgInstallsEntriesAndStats(t *testing.T) {
	m, _ := newTestModel()

	entries := []*entry.Entry{
		{ID: "a", UserID: "praew", Date: "2024-01-12", Description: "late", Hours: entry.Hours(4)},
		{ID: "b", UserID: "praew", Date: "2024-01-10", Description: "early", Hours: entry.Hours(0)},
	}
	model, _ := m.Update(snapshotMsg{entries: entries})
	m = model.(Model)

	if m.loading {
		t.Fatalf("loading should end once a snapshot arrives")
	}
	if len(m.snapshot) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.snapshot))
	}
	if m.stats.TotalHours != 4 {
		t.Fatalf("expected 4 total hours, got %v", m.stats.TotalHours)
	}
	if m.stats.DaysOff != 1 {
		t.Fatalf("expected 1 day off, got %d", m.stats.DaysOff)
	}
}

func TestSnapshotMsgPrunesSelectionAndClampsCursor(t *testing.T) {
	m, _ := newTestModel()

	first := []*entry.Entry{
		{ID: "a", UserID: "praew", Date: "2024-01-12", Description: "one"},
		{ID: "b", UserID: "praew", Date: "2024-01-11", Description: "two"},
		{ID: "c", UserID: "praew", Date: "2024-01-10", Description: "three"},
	}
	model, _ := m.Update(snapshotMsg{entries: first})
	m = model.(Model)
	m.sel.Toggle("a")
	m.sel.Toggle("c")
	m.cursor = 2

	model, _ = m.Update(snapshotMsg{entries: first[:1]})
	m = model.(Model)

	if m.sel.Has("c") {
		t.Fatalf("selection should be pruned to visible ids")
	}
	if !m.sel.Has("a") {
		t.Fatalf("still-visible selection must survive the refresh")
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the shorter snapshot, got %d", m.cursor)
	}
}

func TestQueryErrorSettlesEmptyAndSurfacesOnce(t *testing.T) {
	m, _ := newTestModel()
	model, _ := m.Update(snapshotMsg{entries: []*entry.Entry{
		{ID: "a", UserID: "praew", Date: "2024-01-10", Description: "stale"},
	}})
	m = model.(Model)

	failure := &store.QueryError{Op: "list", Err: fmt.Errorf("disk gone")}
	model, _ = m.Update(snapshotMsg{err: failure})
	m = model.(Model)

	if m.loading {
		t.Fatalf("a failed query must still end the loading state")
	}
	if len(m.snapshot) != 0 {
		t.Fatalf("failed query should settle on an empty snapshot")
	}
	if m.status == "" {
		t.Fatalf("first query error should surface in the status line")
	}

	m.status = ""
	model, _ = m.Update(snapshotMsg{err: failure})
	m = model.(Model)
	if m.status != "" {
		t.Fatalf("repeated query errors must not spam the status line")
	}
}

func TestStoreEventTriggersReloadAndResubscribe(t *testing.T) {
	m, _ := newTestModel()
	ch := make(chan store.Event, 1)

	model, _ := m.Update(subscribedMsg{ch: ch})
	m = model.(Model)

	_, cmd := m.Update(storeEventMsg{event: store.Event{Type: store.EventEntriesChanged, UserID: "praew"}, ok: true})
	if cmd == nil {
		t.Fatalf("a live event must queue a reload and the next receive")
	}

	_, cmd = m.Update(storeEventMsg{ok: false})
	if cmd != nil {
		t.Fatalf("a closed channel must not resubscribe")
	}
}

func TestFormFailureKeepsModalOpen(t *testing.T) {
	m, _ := newTestModel()
	m.openForm(nil)
	if m.modal != modalForm {
		t.Fatalf("expected form modal open")
	}

	failure := &store.WriteError{Op: "create", Err: fmt.Errorf("disk full")}
	model, _ := m.Update(formResultMsg{err: failure})
	m = model.(Model)

	if m.modal != modalForm {
		t.Fatalf("write failure must keep the form open")
	}
	if m.form.err == nil {
		t.Fatalf("write failure should be shown inside the form")
	}

	model, _ = m.Update(formResultMsg{})
	m = model.(Model)
	if m.modal != modalNone {
		t.Fatalf("successful save should close the form")
	}
}

func TestConfirmArmsOnlyOnExactKeyword(t *testing.T) {
	m, _ := newTestModel()
	m.openConfirm([]string{"a", "b"})

	if m.confirm.armed(m.tr.T("confirm_keyword")) {
		t.Fatalf("confirm must start disarmed")
	}
	m.confirm.input.SetValue("conf")
	if m.confirm.armed(m.tr.T("confirm_keyword")) {
		t.Fatalf("partial keyword must not arm the delete")
	}
	m.confirm.input.SetValue("  confirm  ")
	if !m.confirm.armed(m.tr.T("confirm_keyword")) {
		t.Fatalf("trimmed keyword match should arm the delete")
	}
}

func TestConfirmKeywordIsLocalized(t *testing.T) {
	m, _ := newTestModel()
	m.toggleLanguage() // en -> th
	m.openConfirm([]string{"a"})

	m.confirm.input.SetValue("confirm")
	if m.confirm.armed(m.tr.T("confirm_keyword")) {
		t.Fatalf("english keyword must not arm the thai confirmation")
	}
	m.confirm.input.SetValue("ยืนยัน")
	if !m.confirm.armed(m.tr.T("confirm_keyword")) {
		t.Fatalf("thai keyword should arm the thai confirmation")
	}
}

func TestDeleteFailureKeepsConfirmOpen(t *testing.T) {
	m, _ := newTestModel()
	m.openConfirm([]string{"a"})

	failure := &store.WriteError{Op: "delete", Err: fmt.Errorf("missing")}
	model, _ := m.Update(deleteResultMsg{err: failure})
	m = model.(Model)
	if m.modal != modalConfirm {
		t.Fatalf("delete failure must keep the confirmation open")
	}

	m.sel.Toggle("a")
	model, _ = m.Update(deleteResultMsg{count: 1})
	m = model.(Model)
	if m.modal != modalNone {
		t.Fatalf("successful delete should close the confirmation")
	}
	if m.sel.Len() != 0 {
		t.Fatalf("selection should clear after a successful delete")
	}
}

func TestDetailEditSwitchesModals(t *testing.T) {
	m, _ := newTestModel()
	e := &entry.Entry{ID: "a", UserID: "praew", Date: "2024-01-10", Description: "work", Hours: entry.Hours(4)}
	model, _ := m.Update(snapshotMsg{entries: []*entry.Entry{e}})
	m = model.(Model)

	m.modal = modalDetail
	m.detailID = "a"
	m.openForm(e)

	if m.modal != modalForm {
		t.Fatalf("editing should replace the detail modal")
	}
	if m.detailID != "" {
		t.Fatalf("detail state should reset when the form opens")
	}
	if m.form.editingID != "a" {
		t.Fatalf("form should target the viewed entry")
	}
	if m.form.preset != hoursHalf {
		t.Fatalf("4 recorded hours should map onto the half-day preset, got %v", m.form.preset)
	}
}

func TestDetailModalClosesWhenEntryVanishes(t *testing.T) {
	m, _ := newTestModel()
	e := &entry.Entry{ID: "a", UserID: "praew", Date: "2024-01-10", Description: "work"}
	model, _ := m.Update(snapshotMsg{entries: []*entry.Entry{e}})
	m = model.(Model)
	m.modal = modalDetail
	m.detailID = "a"

	model, _ = m.Update(snapshotMsg{entries: nil})
	m = model.(Model)
	if m.modal != modalNone {
		t.Fatalf("detail modal must close when its record is deleted elsewhere")
	}
}

func TestThemeCyclePersists(t *testing.T) {
	cfg := &fakeConfig{theme: "dark", locale: "en"}
	fp := newFakePersistence()
	m := New(&app.Service{Persistence: fp, UserID: "praew"}, cfg)

	m.updateNormal(keyPress("t"))
	if m.th.Name != "blue" {
		t.Fatalf("dark should cycle to blue, got %s", m.th.Name)
	}
	if cfg.theme != "blue" {
		t.Fatalf("theme change must be written back, got %q", cfg.theme)
	}
}

func TestLanguageTogglePersists(t *testing.T) {
	cfg := &fakeConfig{theme: "dark", locale: "th"}
	fp := newFakePersistence()
	m := New(&app.Service{Persistence: fp, UserID: "praew"}, cfg)

	if m.tr.Lang() != "th" {
		t.Fatalf("expected configured thai locale, got %s", m.tr.Lang())
	}
	m.toggleLanguage()
	if m.tr.Lang() != "en" {
		t.Fatalf("toggle should switch to english, got %s", m.tr.Lang())
	}
	if cfg.locale != "en" {
		t.Fatalf("locale change must be written back, got %q", cfg.locale)
	}
}

func TestViewCycleOrder(t *testing.T) {
	order := []viewMode{viewList, viewGrid, viewTable, viewCalendar, viewList}
	v := viewList
	for i := 1; i < len(order); i++ {
		v = nextView(v)
		if v != order[i] {
			t.Fatalf("cycle step %d: want %v, got %v", i, order[i], v)
		}
	}
}

func TestSubmitFormCreatesThroughService(t *testing.T) {
	m, fp := newTestModel()
	m.openForm(nil)
	m.form.date.SetValue("2024-01-10")
	m.form.preset = hoursHoliday
	m.form.desc.SetValue("songkran")

	cmd := m.submitForm()
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	msg := cmd()
	res, ok := msg.(formResultMsg)
	if !ok {
		t.Fatalf("expected formResultMsg, got %T", msg)
	}
	if res.err != nil {
		t.Fatalf("unexpected submit error: %v", res.err)
	}

	entries, err := fp.List(context.Background(), "praew")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected stored entry, got %d", len(entries))
	}
	if !entries[0].IsHoliday() {
		t.Fatalf("holiday preset should store explicit zero hours")
	}
}

func TestSubmitFormEmptyCustomHoursStaysUnrecorded(t *testing.T) {
	m, fp := newTestModel()
	m.openForm(nil)
	m.form.date.SetValue("2024-01-10")
	m.form.preset = hoursCustom
	m.form.custom.SetValue("")
	m.form.desc.SetValue("forgot the clock")

	if msg := m.submitForm()(); msg.(formResultMsg).err != nil {
		t.Fatalf("submit: %v", msg.(formResultMsg).err)
	}

	entries, _ := fp.List(context.Background(), "praew")
	if len(entries) != 1 {
		t.Fatalf("expected stored entry, got %d", len(entries))
	}
	if entries[0].Hours != nil {
		t.Fatalf("empty custom hours must persist as unrecorded, got %v", *entries[0].Hours)
	}
}

func keyPress(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s, Code: rune(s[0])}
}

// fakeConfig records theme and locale writes in memory.
type fakeConfig struct {
	theme  string
	locale string
}

func (c *fakeConfig) BasePath() string { return "" }
func (c *fakeConfig) LogPath() string  { return "" }
func (c *fakeConfig) LogLevel() string { return "info" }
func (c *fakeConfig) Theme() string    { return c.theme }
func (c *fakeConfig) Locale() string   { return c.locale }
func (c *fakeConfig) SetTheme(name string) error {
	c.theme = name
	return nil
}
func (c *fakeConfig) SetLocale(code string) error {
	c.locale = code
	return nil
}

// fakePersistence keeps entries in memory, scoped per user.
type fakePersistence struct {
	mu   sync.Mutex
	next int
	data map[string][]*entry.Entry
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{data: make(map[string][]*entry.Entry)}
}

func (f *fakePersistence) List(ctx context.Context, userID string) ([]*entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entry.Entry(nil), f.data[userID]...), nil
}

func (f *fakePersistence) Create(e *entry.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.UserID == "" {
		return &store.WriteError{Op: "create", Err: fmt.Errorf("no user")}
	}
	f.next++
	e.ID = fmt.Sprintf("id%d", f.next)
	f.data[e.UserID] = append(f.data[e.UserID], e)
	return nil
}

func (f *fakePersistence) Update(e *entry.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.data[e.UserID]
	for i, existing := range entries {
		if existing.ID == e.ID {
			entries[i] = e
			return nil
		}
	}
	return &store.WriteError{Op: "update", Err: fmt.Errorf("not found")}
}

func (f *fakePersistence) DeleteMany(ctx context.Context, userID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.data[userID]
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return &store.WriteError{Op: "delete", Err: fmt.Errorf("%s not found", id)}
		}
	}
	var kept []*entry.Entry
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	for _, e := range entries {
		if _, ok := doomed[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	f.data[userID] = kept
	return nil
}

func (f *fakePersistence) Watch(ctx context.Context, userID string) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var _ store.Persistence = (*fakePersistence)(nil)
var _ store.Config = (*fakeConfig)(nil)
