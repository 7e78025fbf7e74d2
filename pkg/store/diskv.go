package store

import (
	"context"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/karnwit/internlog/pkg/entry"
	"github.com/karnwit/internlog/pkg/logging"
)

// Persistence is the record-store contract: user-scoped reads ordered by date
// descending, write-through mutations, and a live change feed. Callers never
// see another user's records.
type Persistence interface {
	List(ctx context.Context, userID string) ([]*entry.Entry, error)
	Create(e *entry.Entry) error
	Update(e *entry.Entry) error
	DeleteMany(ctx context.Context, userID string, ids []string) error
	Watch(ctx context.Context, userID string) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	e.ID = pk.FileName
	e.UserID = fromUserDir(pk.Path[0])
	return e, nil
}

func (p *persistence) List(ctx context.Context, userID string) ([]*entry.Entry, error) {
	if userID == "" {
		return nil, &QueryError{Op: "list", Err: fmt.Errorf("user id required")}
	}
	prefix := toUserDir(userID) + "-"
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			logging.L().WithError(err).WithField("key", key).Warn("skipping unreadable entry")
			continue
		}
		all = append(all, e)
	}
	sortSnapshot(all)
	return all, nil
}

func (p *persistence) Create(e *entry.Entry) error {
	if e == nil || e.UserID == "" {
		return &WriteError{Op: "create", Err: fmt.Errorf("entry owner required")}
	}
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Created.IsZero() {
		e.Created = entry.Timestamp{Time: time.Now().UTC()}
	}
	data, err := json.Marshal(e)
	if err != nil {
		return &WriteError{Op: "create", Err: err}
	}
	if err := p.d.Write(toKey(e), data); err != nil {
		return &WriteError{Op: "create", Err: err}
	}
	return nil
}

// Update overwrites the four mutable fields of an existing record. Identity
// and creation metadata are preserved; a changed date moves the document to
// its new key.
func (p *persistence) Update(e *entry.Entry) error {
	if e == nil || e.ID == "" || e.UserID == "" {
		return &WriteError{Op: "update", Err: fmt.Errorf("entry id and owner required")}
	}
	oldKey, existing, err := p.find(e.UserID, e.ID)
	if err != nil {
		return &WriteError{Op: "update", Err: err}
	}

	existing.Date = e.Date
	existing.Hours = e.Hours
	existing.Description = e.Description
	existing.WorkLink = e.WorkLink

	data, err := json.Marshal(existing)
	if err != nil {
		return &WriteError{Op: "update", Err: err}
	}
	newKey := toKey(existing)
	if err := p.d.Write(newKey, data); err != nil {
		return &WriteError{Op: "update", Err: err}
	}
	if newKey != oldKey {
		if err := p.d.Erase(oldKey); err != nil {
			return &WriteError{Op: "update", Err: fmt.Errorf("remove stale document: %w", err)}
		}
	}
	*e = *existing
	return nil
}

// DeleteMany removes the listed ids with batch semantics: either every id is
// removed or none are. A missing id fails the whole batch before anything is
// deleted, and a mid-batch failure restores the documents already removed.
func (p *persistence) DeleteMany(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	type doc struct {
		key  string
		data []byte
	}
	batch := make([]doc, 0, len(ids))
	for _, id := range ids {
		key, _, err := p.find(userID, id)
		if err != nil {
			return &WriteError{Op: "delete", Err: err}
		}
		data, err := p.d.Read(key)
		if err != nil {
			return &WriteError{Op: "delete", Err: err}
		}
		batch = append(batch, doc{key: key, data: data})
	}

	for i, d := range batch {
		if err := p.d.Erase(d.key); err != nil {
			// Roll back so the caller never observes a partial delete.
			for j := 0; j < i; j++ {
				if restoreErr := p.d.Write(batch[j].key, batch[j].data); restoreErr != nil {
					logging.L().WithError(restoreErr).WithField("key", batch[j].key).
						Error("rollback failed, document lost")
				}
			}
			return &WriteError{Op: "delete", Err: err}
		}
	}
	return nil
}

// find scans the user's bucket for the document with the given id.
func (p *persistence) find(userID, id string) (string, *entry.Entry, error) {
	prefix := toUserDir(userID) + "-"
	for key := range p.d.Keys(nil) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if keyToPathTransform(key).FileName != id {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			return "", nil, err
		}
		return key, e, nil
	}
	return "", nil, fmt.Errorf("entry %s not found", id)
}

// sortSnapshot orders entries by date descending; ties break by creation time
// then id so the order is stable across reloads.
func sortSnapshot(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Date != right.Date {
			return left.Date > right.Date
		}
		lt := left.Created.Time
		rt := right.Created.Time
		if !lt.Equal(rt) {
			return lt.Before(rt)
		}
		return left.ID < right.ID
	})
}

func newID() string {
	// Key segments are dash-separated, so the id must not contain dashes.
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `user-date-id`; the date's own dashes give a yyyy/mm/dd
// directory layout under the user bucket.
func toKey(e *entry.Entry) string {
	return fmt.Sprintf("%s-%s-%s", toUserDir(e.UserID), e.Date, e.ID)
}

// User ids become directory names via base32: its alphabet has no path
// separators and no dashes, so the bucket stays a single key segment.
func toUserDir(userID string) string {
	return base32.StdEncoding.EncodeToString([]byte(userID))
}

func fromUserDir(s string) string {
	decoded, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(decoded)
}
