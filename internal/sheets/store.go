// Package sheets hosts one grid.Grid per sheet identifier behind a mutex,
// giving cmd/sheetd the external mutual exclusion spec.md
// §5 requires of any host driving the core from multiple goroutines.
// Grounded on SheetRepository.go, which plays the same role for the
// teacher's bbolt-backed sheets.
package sheets

import (
	"errors"
	"sync"

	"github.com/berejant/gridsheet/internal/grid"
)

// ErrSheetNotFound is returned when a sheet id has never been used.
var ErrSheetNotFound = errors.New("sheet not found")

type sheetEntry struct {
	mu   sync.Mutex
	grid *grid.Grid
}

// Store maps sheet ids to independently-locked Grids.
type Store struct {
	parser grid.Parser

	mu     sync.RWMutex
	sheets map[string]*sheetEntry
}

// NewStore builds an empty Store whose sheets parse formulas with parser.
func NewStore(parser grid.Parser) *Store {
	return &Store{parser: parser, sheets: make(map[string]*sheetEntry)}
}

func (s *Store) entry(sheetID string, create bool) *sheetEntry {
	s.mu.RLock()
	e, ok := s.sheets[sheetID]
	s.mu.RUnlock()
	if ok || !create {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sheets[sheetID]; ok {
		return e
	}
	e = &sheetEntry{grid: grid.NewGrid(s.parser)}
	s.sheets[sheetID] = e
	return e
}

// WithSheet runs fn while holding sheetID's mutex, creating the sheet's
// Grid on first use.
func (s *Store) WithSheet(sheetID string, fn func(g *grid.Grid)) {
	e := s.entry(sheetID, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.grid)
}

// WithExistingSheet runs fn while holding sheetID's mutex, or returns
// ErrSheetNotFound if the sheet has never been written to.
func (s *Store) WithExistingSheet(sheetID string, fn func(g *grid.Grid)) error {
	e := s.entry(sheetID, false)
	if e == nil {
		return ErrSheetNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.grid)
	return nil
}
