// Package memory provides an in-memory storage.KV used by tests and by
// ephemeral panel runs that should not touch disk.
package memory

import (
	"context"
	"sync"

	"restaurant-owner-panel/internal/storage"
)

// Store is an in-memory storage.KV implementation.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewStore returns a new in-memory store.
func NewStore() *Store {
	return &Store{m: make(map[string][]byte)}
}

// Get returns the value stored under key, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
