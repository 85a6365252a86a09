package evidence

import (
	"context"
	"slices"
	"sync"
)

// Evidence is what the logs below one directory say.
type Evidence struct {
	// HasValidLog reports whether at least one log produced a TOC that the
	// release lookup answered (possibly with zero releases).
	HasValidLog bool `json:"has_valid_log"`
	// ReleaseIDs is the sorted union of release ids from every such log.
	ReleaseIDs []string `json:"release_ids"`
}

// Contains reports whether id is one of the evidence's release ids.
func (e Evidence) Contains(id string) bool {
	_, found := slices.BinarySearch(e.ReleaseIDs, id)
	return found
}

// Store holds Evidence keyed by absolute directory path. Entries are written
// once: Put on an existing key keeps the first value.
type Store interface {
	Get(ctx context.Context, dir string) (Evidence, bool, error)
	Put(ctx context.Context, dir string, ev Evidence) error
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Evidence
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Evidence)}
}

func (s *MemoryStore) Get(_ context.Context, dir string) (Evidence, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.entries[dir]
	if !ok {
		return Evidence{}, false, nil
	}
	return Evidence{HasValidLog: ev.HasValidLog, ReleaseIDs: slices.Clone(ev.ReleaseIDs)}, true, nil
}

func (s *MemoryStore) Put(_ context.Context, dir string, ev Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[dir]; !exists {
		s.entries[dir] = Evidence{HasValidLog: ev.HasValidLog, ReleaseIDs: slices.Clone(ev.ReleaseIDs)}
	}
	return nil
}

// Len returns the number of directories recorded.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
