// Package memory provides the reference in-memory audit store. It favors
// clarity over performance and is the default when no durable backend is
// configured.
package memory

import (
	"context"
	"sync"

	"guardian/internal/audit"
)

type Store struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// List returns a copy of the entries in append order, so readers always see a
// consistent prefix regardless of concurrent appends.
func (s *Store) List(_ context.Context) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Entry{}, s.entries...), nil
}
