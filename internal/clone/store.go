// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package clone stores named disguises for reuse through "@name" references.
package clone

import (
	"crypto/rand"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/disguise/internal/disguise"
)

// RefPrefix marks a clone reference in command input.
const RefPrefix = "@"

// Entry describes a stored disguise.
type Entry struct {
	ID      ulid.ULID
	Name    string
	Kind    string
	SavedAt time.Time
}

type stored struct {
	entry Entry
	d     *disguise.Descriptor
}

// Store holds named disguises. Stored descriptors are never handed out;
// readers always get their own deep copy.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]*stored // key → entry
	capacity int
	entropy  *ulid.MonotonicEntropy // guarded by mu
}

// NewStore creates a store. A capacity of zero or less means unbounded;
// otherwise saving a new name into a full store evicts the oldest entry.
func NewStore(capacity int) *Store {
	return &Store{
		entries:  make(map[string]*stored),
		capacity: capacity,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Key normalizes a reference name: the leading "@" is dropped and case ignored.
func Key(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), RefPrefix))
}

// IsRef reports whether a token is a clone reference.
func IsRef(tok string) bool {
	return strings.HasPrefix(tok, RefPrefix)
}

// Save stores a deep copy of d under name, replacing any entry with the same key.
func (s *Store) Save(name string, d *disguise.Descriptor) (Entry, error) {
	key := Key(name)
	if key == "" || strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return Entry{}, oops.In("clone").
			Code("INVALID_CLONE_NAME").
			With("name", name).
			Errorf("clone name must be a single non-empty word")
	}
	if d == nil {
		return Entry{}, oops.In("clone").Code("INVALID_CLONE").With("name", name).Errorf("descriptor cannot be nil")
	}

	cp := d.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	// ids are monotonic within a store, so they order entries by save time
	now := time.Now()
	entry := Entry{
		ID:      ulid.MustNew(ulid.Timestamp(now), s.entropy),
		Name:    strings.TrimPrefix(strings.TrimSpace(name), RefPrefix),
		Kind:    d.Kind().Name,
		SavedAt: now,
	}

	if _, exists := s.entries[key]; !exists && s.capacity > 0 && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[key] = &stored{entry: entry, d: cp}
	return entry, nil
}

func (s *Store) evictOldestLocked() {
	var oldestKey string
	var oldest ulid.ULID
	for k, st := range s.entries {
		if oldestKey == "" || st.entry.ID.Compare(oldest) < 0 {
			oldestKey, oldest = k, st.entry.ID
		}
	}
	if oldestKey != "" {
		slog.Debug("evicting clone", "name", s.entries[oldestKey].entry.Name, "id", oldest.String())
		delete(s.entries, oldestKey)
	}
}

// Get returns a deep copy of the named disguise, or nil when absent.
func (s *Store) Get(name string) *disguise.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.entries[Key(name)]
	if !ok {
		return nil
	}
	return st.d.Clone()
}

// Entry returns the metadata of a stored disguise.
func (s *Store) Entry(name string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.entries[Key(name)]
	if !ok {
		return Entry{}, false
	}
	return st.entry, true
}

// Remove deletes a stored disguise and reports whether it existed.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(name)
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Names lists the stored names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries))
	for _, st := range s.entries {
		out = append(out, st.entry.Name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of stored disguises.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
