// Package blob provides durable key to string storage backends.
package blob

import (
	"context"
	"errors"
	"fmt"
)

// Blob store errors.
var (
	ErrEmptyKey       = errors.New("blob key cannot be empty")
	ErrUnknownBackend = errors.New("storage backend must be one of: memory, bolt, sqlite")
	ErrEmptyPath      = errors.New("storage path cannot be empty")
)

// Supported backends.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Store is a durable key to value blob store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Open creates a Store for the named backend. path is ignored for memory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendBolt:
		s, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// checkCall validates the common preconditions of every operation.
func checkCall(ctx context.Context, op, key string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s blob: %w", op, ctx.Err())
	default:
	}

	if key == "" {
		return fmt.Errorf("%s blob: %w", op, ErrEmptyKey)
	}

	return nil
}
