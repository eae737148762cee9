package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/shareit/internal/domains/items/domain"
	"github.com/Apurer/shareit/internal/domains/items/ports"
)

var _ ports.CommentRepository = (*CommentRepository)(nil)

// CommentRepository is an in-memory comment persistence adapter.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[int64]*domain.Comment
	nextID   int64
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: map[int64]*domain.Comment{}}
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, errors.New("comment is nil")
	}
	clone := *comment
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *CommentRepository) ListByItemIDs(_ context.Context, itemIDs []int64) ([]*domain.Comment, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Comment
	for _, comment := range r.comments {
		if wanted[comment.ItemID] {
			clone := *comment
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Created.After(list[j].Created) })
	return list, nil
}
