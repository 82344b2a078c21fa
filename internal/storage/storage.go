// Package storage defines the key-value abstraction backing the panel's
// durable local state (session record, bearer token).
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key is absent.
var ErrNotFound = errors.New("key not found")

// KV persists small opaque values under string keys. Implementations must be
// safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
