package ports

import (
	"context"

	"github.com/Apurer/shareit/internal/domains/items/domain"
)

// NewItem carries the item-create input.
type NewItem struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateItem carries the optional fields of a partial item update. Nil fields
// keep their stored values.
type UpdateItem struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service exposes item bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, ownerID int64, req NewItem) (*domain.Item, error)
	Update(ctx context.Context, userID, itemID int64, patch UpdateItem) (*domain.Item, error)
	Remove(ctx context.Context, userID, itemID int64) error
	GetByID(ctx context.Context, itemID int64) (*domain.Details, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Details, error)
	Search(ctx context.Context, text string) ([]*domain.Item, error)
	AddComment(ctx context.Context, userID, itemID int64, text string) (*domain.CommentView, error)
}
