package tui

import (
	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/store"
)

// snapshotMsg carries a fresh snapshot or the query error that prevented one.
type snapshotMsg struct {
	entries []*entry.Entry
	err     error
}

// subscribedMsg delivers the live event channel once the watch is set up.
type subscribedMsg struct {
	ch <-chan store.Event
}

// storeEventMsg is one receive from the watch channel. ok is false when the
// channel closed, which means the subscription ended.
type storeEventMsg struct {
	event store.Event
	ok    bool
}

// formResultMsg reports the outcome of a create or update. A non-nil err
// keeps the form open so the user's input is not lost.
type formResultMsg struct {
	err error
}

// deleteResultMsg reports the outcome of a bulk delete.
type deleteResultMsg struct {
	count int
	err   error
}

// exportResultMsg reports where the workbook was written, or why it was not.
type exportResultMsg struct {
	path string
	err  error
}

type errMsg struct{ err error }
