// Package app provides high-level operations on the log for the current
// user. It wraps persistence and field validation so the TUI and the CLI
// commands share logic.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/store"
)

var errNoPersistence = errors.New("app: no persistence configured")

// Service scopes every operation to one authenticated user.
type Service struct {
	Persistence store.Persistence
	UserID      string
}

// Fields carries the four user-editable fields of an entry. Hours stays nil
// when the user did not record hours.
type Fields struct {
	Date        string
	Hours       *float64
	Description string
	WorkLink    string
}

func (f Fields) validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return &store.ValidationError{Field: "description", Reason: "required"}
	}
	if _, err := time.Parse(entry.DateLayout, f.Date); err != nil {
		return &store.ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
	}
	if f.Hours != nil && *f.Hours < 0 {
		return &store.ValidationError{Field: "hours", Reason: "must not be negative"}
	}
	return nil
}

// Snapshot returns the user's entries, date descending.
func (s *Service) Snapshot(ctx context.Context) ([]*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx, s.UserID)
}

// Watch subscribes to change events for the user's records. Cancelling ctx
// ends the subscription.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx, s.UserID)
}

// Create validates and stores a new entry. The snapshot is not updated
// optimistically; the live subscription reflects the write.
func (s *Service) Create(ctx context.Context, f Fields) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	e := entry.New(s.UserID, f.Date, f.Description)
	e.Hours = f.Hours
	e.WorkLink = f.WorkLink
	if err := s.Persistence.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update overwrites the four mutable fields of the entry with the given id.
// This is a full-field overwrite, not a partial patch.
func (s *Service) Update(ctx context.Context, id string, f Fields) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	e := &entry.Entry{
		ID:          id,
		UserID:      s.UserID,
		Date:        f.Date,
		Hours:       f.Hours,
		Description: f.Description,
		WorkLink:    f.WorkLink,
	}
	if err := s.Persistence.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteMany removes the listed entries with all-or-nothing semantics.
func (s *Service) DeleteMany(ctx context.Context, ids []string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.DeleteMany(ctx, s.UserID, ids)
}
