package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shareit/internal/domains/users/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email is already registered")
)

// Repository persists user accounts. Create and Update must reject duplicate
// emails atomically (a stored unique constraint, not a separate pre-check).
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
