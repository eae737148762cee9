package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/shareit/internal/domains/items/domain"
	"github.com/Apurer/shareit/internal/domains/items/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory item persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Item{}}
}

func (r *Repository) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := *item
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := *item
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			clone := *item
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) Search(_ context.Context, text string) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Item
	for _, item := range r.items {
		if item.Available && item.Matches(text) {
			clone := *item
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) ListByRequestIDs(_ context.Context, requestIDs []int64) ([]*domain.Item, error) {
	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Item
	for _, item := range r.items {
		if item.RequestID != nil && wanted[*item.RequestID] {
			clone := *item
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
