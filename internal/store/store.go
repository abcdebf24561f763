// Package store keeps grocery lists in memory and mirrors them to a blob store.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/grocerylist/internal/blob"
	"github.com/vyrodovalexey/grocerylist/internal/categorize"
	"github.com/vyrodovalexey/grocerylist/internal/model"
)

// ErrUnavailable is returned by mutations when the persisted list could not
// be read. Nothing is written in that case.
var ErrUnavailable = errors.New("grocery list unavailable")

// ListStore owns the items persisted under one storage key.
//
// The in-memory collection is authoritative for the lifetime of the store.
// Every mutation writes the whole collection back to the blob store; a
// failed write is logged and counted but never returned to the caller.
// A failed read is retried on the next call.
type ListStore struct {
	mu       sync.Mutex
	key      string
	blobs    blob.Store
	logger   *zap.Logger
	items    []model.GroceryItem
	loaded   bool
	prepared bool
}

// NewListStore creates a ListStore for key. Nothing is read until first use.
func NewListStore(key string, blobs blob.Store, logger *zap.Logger) *ListStore {
	return &ListStore{
		key:    key,
		blobs:  blobs,
		logger: logger.With(zap.String("storage_key", key)),
	}
}

// Key returns the storage key.
func (s *ListStore) Key() string {
	return s.key
}

// Load returns the items in insertion order. The first successful call
// reads the blob store; a missing, unreadable or undecodable blob yields an
// empty list.
func (s *ListStore) Load(ctx context.Context) []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	return s.snapshot()
}

// Add appends a new item and returns it. A blank name or a category outside
// the enumeration is rejected and nothing is stored.
func (s *ListStore) Add(
	ctx context.Context, name, quantity string, category model.Category,
) (model.GroceryItem, error) {
	name = model.NormalizeName(name)
	if name == "" {
		return model.GroceryItem{}, model.ErrEmptyName
	}
	if !category.Valid() {
		return model.GroceryItem{}, fmt.Errorf("%w: %q", model.ErrInvalidCategory, string(category))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.GroceryItem{}, err
	}

	item := model.GroceryItem{
		ID:       uuid.New().String(),
		Name:     name,
		Quantity: model.NormalizeQuantity(quantity),
		Category: category,
		Order:    len(s.items),
	}
	s.items = append(s.items, item)
	s.commit(ctx, opAdd)

	return item, nil
}

// ToggleCompleted flips the completed flag of the item with id.
// It reports false, and changes nothing, when no such item exists.
func (s *ListStore) ToggleCompleted(ctx context.Context, id string) (model.GroceryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensureLoaded(ctx) != nil {
		return model.GroceryItem{}, false
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("toggle of unknown item ignored", zap.String("item_id", id))
		return model.GroceryItem{}, false
	}

	s.items[i].Completed = !s.items[i].Completed
	s.commit(ctx, opToggle)

	return s.items[i], true
}

// Edit replaces the name, quantity and category of the item with id.
// ID, order and completed state are kept. An unknown id is a no-op.
func (s *ListStore) Edit(
	ctx context.Context, id, name, quantity string, category model.Category,
) (model.GroceryItem, bool, error) {
	name = model.NormalizeName(name)
	if name == "" {
		return model.GroceryItem{}, false, model.ErrEmptyName
	}
	if !category.Valid() {
		return model.GroceryItem{}, false, fmt.Errorf("%w: %q", model.ErrInvalidCategory, string(category))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return model.GroceryItem{}, false, err
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("edit of unknown item ignored", zap.String("item_id", id))
		return model.GroceryItem{}, false, nil
	}

	s.items[i].Name = name
	s.items[i].Quantity = model.NormalizeQuantity(quantity)
	s.items[i].Category = category
	s.commit(ctx, opEdit)

	return s.items[i], true, nil
}

// Delete removes the item with id. Remaining items keep their order values.
func (s *ListStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensureLoaded(ctx) != nil {
		return false
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("delete of unknown item ignored", zap.String("item_id", id))
		return false
	}

	s.items = slices.Delete(s.items, i, i+1)
	s.commit(ctx, opDelete)

	return true
}

// SeedFromPreset fills an empty list from preset item names, categorizing
// each one. A non-empty list is left untouched, so repeated calls are safe.
// Blank names are skipped; order is always the index in names.
func (s *ListStore) SeedFromPreset(ctx context.Context, names []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensureLoaded(ctx) != nil {
		return false
	}
	s.prepared = true

	return s.seed(ctx, names)
}

// SeedOnce seeds like SeedFromPreset, but only the first time the list is
// opened through this ListStore. A list the user emptied afterwards stays
// empty. A read failure leaves the first time pending.
func (s *ListStore) SeedOnce(ctx context.Context, names []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prepared || s.ensureLoaded(ctx) != nil {
		return false
	}
	s.prepared = true

	return s.seed(ctx, names)
}

// seed fills an empty, loaded list. Must hold s.mu.
func (s *ListStore) seed(ctx context.Context, names []string) bool {
	if len(s.items) > 0 {
		return false
	}

	seeded := make([]model.GroceryItem, 0, len(names))
	for i, raw := range names {
		name := model.NormalizeName(raw)
		if name == "" {
			continue
		}
		seeded = append(seeded, model.GroceryItem{
			ID:       uuid.New().String(),
			Name:     name,
			Quantity: model.DefaultQuantity,
			Category: categorize.Categorize(name),
			Order:    i,
		})
	}

	if len(seeded) == 0 {
		return false
	}

	s.items = seeded
	s.commit(ctx, opSeed)

	s.logger.Info("grocery list seeded from preset", zap.Int("items", len(seeded)))
	return true
}

// ensureLoaded reads the persisted collection until a read succeeds.
// An undecodable blob counts as read and starts the list empty.
// Must hold s.mu.
func (s *ListStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	value, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		loadFailuresTotal.Inc()
		s.logger.Warn("failed to read grocery list, will retry", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.loaded = true
	s.items = []model.GroceryItem{}
	if !ok {
		return nil
	}

	items, err := decodeItems(value)
	if err != nil {
		loadFailuresTotal.Inc()
		s.logger.Warn("failed to decode grocery list, starting empty", zap.Error(err))
		return nil
	}

	s.items = items
	return nil
}

// commit writes the full collection to the blob store. The write outlives
// a cancelled caller context. Must hold s.mu.
func (s *ListStore) commit(ctx context.Context, op string) {
	listOperationsTotal.WithLabelValues(op).Inc()

	value, err := encodeItems(s.items)
	if err == nil {
		err = s.blobs.Set(context.WithoutCancel(ctx), s.key, value)
	}
	if err != nil {
		persistFailuresTotal.Inc()
		s.logger.Warn("failed to persist grocery list",
			zap.String("operation", op),
			zap.Error(err),
		)
	}
}

func (s *ListStore) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item model.GroceryItem) bool {
		return item.ID == id
	})
}

func (s *ListStore) snapshot() []model.GroceryItem {
	out := make([]model.GroceryItem, len(s.items))
	copy(out, s.items)
	return out
}
