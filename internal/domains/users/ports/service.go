package ports

import (
	"context"

	"github.com/Apurer/shareit/internal/domains/users/domain"
)

// UpdateUser carries the optional fields of a partial profile update. Nil
// fields keep their stored values.
type UpdateUser struct {
	Email *string
	Name  *string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, email, name string) (*domain.User, error)
	Update(ctx context.Context, id int64, patch UpdateUser) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Remove(ctx context.Context, id int64) error
}
