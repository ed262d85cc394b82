package repository

import (
	"context"
	"sync"

	"github.com/LeonR92/kafka/internal/models"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// Create persists a new item and assigns a fresh ID
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	// FindByID returns the item or ErrItemNotFound
	FindByID(ctx context.Context, id int64) (*models.Item, error)
	// FindAll returns every stored item in insertion order
	FindAll(ctx context.Context) ([]models.Item, error)
	// Update applies a partial update; nil patch fields are left unchanged.
	// Returns ErrItemNotFound when no item with the given ID exists.
	Update(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error)
	// Delete removes the item; returns ErrItemNotFound when it did not exist
	Delete(ctx context.Context, id int64) error
	Close() error
}

// InMemoryItemRepository keeps items in a map. Used as a fallback when no
// database path is configured, and in tests.
type InMemoryItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]*models.Item
	order  []int64
	nextID int64
}

func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  make(map[int64]*models.Item),
		nextID: 1,
	}
}

func (r *InMemoryItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// IDs are assigned once and never reused after deletion
	created := *item
	created.ID = r.nextID
	r.nextID++

	r.items[created.ID] = &created
	r.order = append(r.order, created.ID)

	result := created
	return &result, nil
}

func (r *InMemoryItemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	result := *item
	return &result, nil
}

func (r *InMemoryItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.items))
	for _, id := range r.order {
		if item, exists := r.items[id]; exists {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *InMemoryItemRepository) Update(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	result := *item
	return &result, nil
}

func (r *InMemoryItemRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryItemRepository) Close() error {
	return nil
}

var (
	ErrItemNotFound = &RepositoryError{Message: "item not found"}
)

type RepositoryError struct {
	Message string
}

func (e *RepositoryError) Error() string {
	return e.Message
}
