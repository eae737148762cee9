package application

import (
	"context"
	"errors"

	"github.com/Apurer/shareit/internal/domains/users/domain"
	"github.com/Apurer/shareit/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, email, name string) (*domain.User, error) {
	user, err := domain.NewUser(email, name)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, user)
}

// Update applies a partial profile update. The email uniqueness check
// excludes the user being updated, so resubmitting an unchanged email is a
// no-op success.
func (s *Service) Update(ctx context.Context, id int64, patch ports.UpdateUser) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		if err := user.SetEmail(*patch.Email); err != nil {
			return nil, mapError(err)
		}
		existing, err := s.repo.GetByEmail(ctx, user.Email)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ports.ErrEmailTaken
		}
	}
	if patch.Name != nil {
		if err := user.SetName(*patch.Name); err != nil {
			return nil, mapError(err)
		}
	}
	return s.repo.Update(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
