// Package memstore is an in-memory Snapshotter for tests and the
// "memory" backend, where state lives only for the process lifetime.
package memstore

import (
	"context"
	"sync"

	"github.com/centavoapp/centavo/internal/ledger"
)

type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func New() *Store {
	return &Store{records: make(map[string][]byte)}
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	s.records[key] = buf

	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, ledger.ErrNoSnapshot
	}

	return value, nil
}

func (s *Store) Wipe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string][]byte)

	return nil
}
