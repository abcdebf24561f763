package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/grocerylist/internal/blob"
)

// Registry hands out one ListStore per storage key for a long-lived process.
type Registry struct {
	mu     sync.Mutex
	blobs  blob.Store
	logger *zap.Logger
	lists  map[string]*ListStore
}

// NewRegistry creates a Registry backed by blobs.
func NewRegistry(blobs blob.Store, logger *zap.Logger) *Registry {
	return &Registry{
		blobs:  blobs,
		logger: logger,
		lists:  make(map[string]*ListStore),
	}
}

// List returns the ListStore for key, creating it on first use.
func (r *Registry) List(key string) *ListStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ls, ok := r.lists[key]; ok {
		return ls
	}

	ls := NewListStore(key, r.blobs, r.logger)
	r.lists[key] = ls
	return ls
}
