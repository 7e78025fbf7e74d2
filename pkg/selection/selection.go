// Package selection tracks which entry ids are marked for bulk actions. The
// set is session-local and never persisted; it must stay a subset of the ids
// currently visible in the snapshot.
package selection

import "sort"

// Set is a mutable collection of selected entry ids. The zero value is not
// usable; construct with New.
type Set struct {
	ids map[string]struct{}
}

func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Toggle adds the id if absent and removes it if present.
func (s *Set) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll is the select-all/deselect-all toggle: if every visible id is
// already selected the set empties, otherwise it becomes exactly the visible
// ids.
func (s *Set) ToggleAll(visible []string) {
	if len(s.ids) == len(visible) && len(visible) > 0 {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(visible))
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the set. Called after a successful bulk delete.
func (s *Set) Clear() {
	s.ids = make(map[string]struct{})
}

// Prune drops any selected id not present in the snapshot anymore. Invoked
// after every snapshot change so the selection never references deleted
// records.
func (s *Set) Prune(visible []string) {
	keep := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		keep[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in stable order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
