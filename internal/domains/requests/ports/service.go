package ports

import (
	"context"

	"github.com/Apurer/shareit/internal/domains/requests/domain"
)

// Service exposes item-request bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, authorID int64, description string) (*domain.Details, error)
	GetByID(ctx context.Context, requestID int64) (*domain.Details, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Details, error)
	ListAll(ctx context.Context) ([]*domain.Details, error)
}
