package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/shareit/internal/domains/requests/domain"
	"github.com/Apurer/shareit/internal/domains/requests/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory item-request persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	requests map[int64]*domain.ItemRequest
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{requests: map[int64]*domain.ItemRequest{}}
}

func (r *Repository) Create(_ context.Context, request *domain.ItemRequest) (*domain.ItemRequest, error) {
	if request == nil {
		return nil, errors.New("item request is nil")
	}
	clone := *request
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.requests[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *request
	return &clone, nil
}

func (r *Repository) ListByAuthor(_ context.Context, authorID int64) ([]*domain.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.ItemRequest
	for _, request := range r.requests {
		if request.AuthorID == authorID {
			clone := *request
			list = append(list, &clone)
		}
	}
	sortByCreated(list)
	return list, nil
}

func (r *Repository) ListAll(_ context.Context) ([]*domain.ItemRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.ItemRequest, 0, len(r.requests))
	for _, request := range r.requests {
		clone := *request
		list = append(list, &clone)
	}
	sortByCreated(list)
	return list, nil
}

func sortByCreated(list []*domain.ItemRequest) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Created.Equal(list[j].Created) {
			return list[i].Created.Before(list[j].Created)
		}
		return list[i].ID < list[j].ID
	})
}
