package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shareit/internal/domains/items/domain"
)

var ErrNotFound = errors.New("item not found")

// Repository persists items.
type Repository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Item, error)
	// Search returns available items whose name or description contains the
	// text, case-insensitively. Blank text handling is the service's concern.
	Search(ctx context.Context, text string) ([]*domain.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*domain.Item, error)
}

// CommentRepository persists item comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// ListByItemIDs returns comments for the given items ordered by creation
	// timestamp descending.
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Comment, error)
}
