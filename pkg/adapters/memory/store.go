// Package memory provides an in-memory SnapshotStore, useful for tests and
// embedded scenarios where persistence across processes is not needed.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/flux/pkg/ports"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, key string, snapshot []byte) error {
	// Copy so later caller mutations don't leak into the store
	buf := make([]byte, len(snapshot))
	copy(buf, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = buf
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.data[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}

	// Copy on read so the caller can't mutate stored bytes
	buf := make([]byte, len(snapshot))
	copy(buf, snapshot)
	return buf, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns the keys of all stored snapshots.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
