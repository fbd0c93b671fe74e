// Package state holds the "currently viewed" detail slot shared between the
// catalog and the detail screen.
package state

import (
	"sync"

	"github.com/justchokingaround/aniview/internal/anime"
)

// DetailQuery is the read-only view of the shared selection the detail
// screen depends on.
type DetailQuery interface {
	CurrentDetail() anime.Record
}

// Store is the single selection slot. Selecting a record replaces the
// previous one.
type Store struct {
	mu       sync.RWMutex
	current  anime.Record
	selected bool
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{}
}

// Select stores rec as the current detail record
func (s *Store) Select(rec anime.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = rec
	s.selected = true
}

// CurrentDetail returns the selected record, or the zero record when
// nothing has been selected
func (s *Store) CurrentDetail() anime.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Selected returns the current record and whether one has been selected
func (s *Store) Selected() (anime.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.selected
}

// Clear empties the slot
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = anime.Record{}
	s.selected = false
}

// Static is a fixed record satisfying DetailQuery
type Static anime.Record

// CurrentDetail implements DetailQuery
func (s Static) CurrentDetail() anime.Record {
	return anime.Record(s)
}
