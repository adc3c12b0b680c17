// Package store provides portfolio persistence backends: an in-memory map,
// a one-JSON-file-per-user directory, and a SQLite database.
package store

import (
	"sync"

	papertrade "github.com/etnz/papertrade"
)

// Memory is a volatile in-memory store, useful for tests and throwaway
// sessions. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]*papertrade.Portfolio
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]*papertrade.Portfolio)}
}

func (s *Memory) Load(userID string) (*papertrade.Portfolio, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[userID]
	if !ok {
		return nil, false, nil
	}
	// Clone both ways so callers never share ledger state with the store.
	return p.Clone(), true, nil
}

func (s *Memory) Save(userID string, p *papertrade.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = p.Clone()
	return nil
}
