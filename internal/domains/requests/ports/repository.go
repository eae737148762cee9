package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shareit/internal/domains/requests/domain"
)

var ErrNotFound = errors.New("item request not found")

// Repository persists item requests.
type Repository interface {
	Create(ctx context.Context, request *domain.ItemRequest) (*domain.ItemRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	// ListByAuthor and ListAll return requests ordered by creation timestamp
	// ascending.
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.ItemRequest, error)
	ListAll(ctx context.Context) ([]*domain.ItemRequest, error)
}
