package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/karnwit/internlog/pkg/logging"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntriesChanged indicates the subscribed user's records changed
	// (added, edited, or removed documents) and the snapshot should reload.
	EventEntriesChanged EventType = iota

	// EventInvalidated signals a change that could not be attributed to a
	// specific user bucket; subscribers should refresh to stay safe.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type   EventType
	UserID string
}

// Watch streams change events for the given user until ctx is cancelled.
// Callers should drain the returned channel to avoid blocking the watcher.
// The channel is closed once ctx is done or the watcher encounters an
// unrecoverable error; cancelling ctx is the unsubscribe and must happen at
// teardown.
func (p *persistence) Watch(ctx context.Context, userID string) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, &QueryError{Op: "watch", Err: errors.New("persistence base path unknown")}
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, &QueryError{Op: "watch", Err: fmt.Errorf("ensure base path: %w", err)}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &QueryError{Op: "watch", Err: fmt.Errorf("create watcher: %w", err)}
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logging.L().WithError(err).Warn("watcher close")
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, &QueryError{Op: "watch", Err: fmt.Errorf("enumerate directories: %w", err)}
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, &QueryError{Op: "watch", Err: fmt.Errorf("watch %s: %w", dir, err)}
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		// Track directories we already watch so we can add new ones at
		// runtime without duplicating watches.
		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; a subsequent
				// refresh picks up the changes and keeps filesystem storms
				// from blocking the watcher goroutine.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh to keep clients
				// in sync even if we cannot classify the change precisely.
				logging.L().WithError(err).Warn("watcher error, forcing refresh")
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// A new directory means a new user bucket or date
					// folder; start watching it to capture subsequent file
					// writes.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								logging.L().WithError(err).WithField("dir", absDir).Warn("watch new dir")
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventInvalidated}, send)
						continue
					}
				}

				owner := p.userForPath(evt.Name)
				if owner == "" {
					throttle.Enqueue(Event{Type: EventInvalidated}, send)
					continue
				}
				if owner != userID {
					// Another user's bucket; not relevant to this
					// subscription.
					continue
				}

				throttle.Enqueue(Event{Type: EventEntriesChanged, UserID: owner}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// userForPath derives the owning user from a document path.
func (p *persistence) userForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	return fromUserDir(parts[0])
}

// eventThrottle coalesces rapid change notifications so the UI can redraw
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.UserID] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, users := range pending {
		if len(users) == 0 {
			send(Event{Type: eventType})
			continue
		}
		for user := range users {
			send(Event{Type: eventType, UserID: user})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
