package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karnwit/internlog/pkg/entry"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string            { return t.path }
func (t testConfig) LogPath() string             { return "" }
func (t testConfig) LogLevel() string            { return "info" }
func (t testConfig) Theme() string               { return "dark" }
func (t testConfig) Locale() string              { return "th" }
func (t testConfig) SetTheme(name string) error  { return nil }
func (t testConfig) SetLocale(code string) error { return nil }

func newTestStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	return p
}

func TestCreateAssignsIdentity(t *testing.T) {
	p := newTestStore(t)

	e := entry.New("praew", "2024-01-10", "first day")
	require.NoError(t, p.Create(e))

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Created.IsZero())
}

func TestCreateRequiresOwner(t *testing.T) {
	p := newTestStore(t)

	err := p.Create(entry.New("", "2024-01-10", "orphan"))
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
}

func TestListScopedToUserSortedDateDescending(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-10", "2024-01-12", "2024-01-11"} {
		require.NoError(t, p.Create(entry.New("praew", date, "work on "+date)))
	}
	require.NoError(t, p.Create(entry.New("somchai", "2024-01-15", "someone else's day")))

	snapshot, err := p.List(ctx, "praew")
	require.NoError(t, err)
	require.Len(t, snapshot, 3)

	assert.Equal(t, "2024-01-12", snapshot[0].Date)
	assert.Equal(t, "2024-01-11", snapshot[1].Date)
	assert.Equal(t, "2024-01-10", snapshot[2].Date)
	for _, e := range snapshot {
		assert.Equal(t, "praew", e.UserID)
	}
}

func TestListEmptyUserIsNotAnError(t *testing.T) {
	p := newTestStore(t)

	snapshot, err := p.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestUpdateOverwritesMutableFields(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := entry.New("praew", "2024-01-10", "draft")
	require.NoError(t, p.Create(e))
	created := e.Created

	patch := &entry.Entry{
		ID:          e.ID,
		UserID:      "praew",
		Date:        "2024-01-11", // date change moves the document
		Hours:       entry.Hours(4),
		Description: "final text",
		WorkLink:    "https://example.com",
	}
	require.NoError(t, p.Update(patch))

	snapshot, err := p.List(ctx, "praew")
	require.NoError(t, err)
	require.Len(t, snapshot, 1, "old document must be gone after date change")

	got := snapshot[0]
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "2024-01-11", got.Date)
	assert.Equal(t, 4.0, *got.Hours)
	assert.Equal(t, "final text", got.Description)
	assert.True(t, got.Created.Equal(created.Time), "creation timestamp is immutable")
}

func TestUpdateMissingEntryFails(t *testing.T) {
	p := newTestStore(t)

	err := p.Update(&entry.Entry{ID: "nope", UserID: "praew", Date: "2024-01-10", Description: "x"})
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
}

func TestDeleteManyRemovesWholeBatch(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, date := range []string{"2024-01-10", "2024-01-11", "2024-01-12"} {
		e := entry.New("praew", date, "work")
		require.NoError(t, p.Create(e))
		ids = append(ids, e.ID)
	}

	require.NoError(t, p.DeleteMany(ctx, "praew", ids))

	snapshot, err := p.List(ctx, "praew")
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestDeleteManyMissingIDDeletesNothing(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := entry.New("praew", "2024-01-10", "keep me")
	require.NoError(t, p.Create(e))

	err := p.DeleteMany(ctx, "praew", []string{e.ID, "ghost"})
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)

	snapshot, listErr := p.List(ctx, "praew")
	require.NoError(t, listErr)
	assert.Len(t, snapshot, 1, "batch failure must not remove any document")
}

func TestDeleteManyEmptyIsNoop(t *testing.T) {
	p := newTestStore(t)
	assert.NoError(t, p.DeleteMany(context.Background(), "praew", nil))
}

func TestListWithoutUserFails(t *testing.T) {
	p := newTestStore(t)

	_, err := p.List(context.Background(), "")
	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
}
