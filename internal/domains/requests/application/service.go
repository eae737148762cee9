package application

import (
	"context"
	"errors"
	"fmt"

	itemports "github.com/Apurer/shareit/internal/domains/items/ports"
	"github.com/Apurer/shareit/internal/domains/requests/domain"
	"github.com/Apurer/shareit/internal/domains/requests/ports"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid item request input")
)

// Service orchestrates item-request use cases.
type Service struct {
	requests ports.Repository
	users    userports.Repository
	items    itemports.Repository
}

func NewService(requests ports.Repository, users userports.Repository, items itemports.Repository) *Service {
	return &Service{requests: requests, users: users, items: items}
}

func (s *Service) Create(ctx context.Context, authorID int64, description string) (*domain.Details, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	request, err := domain.NewItemRequest(author.ID, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	saved, err := s.requests.Create(ctx, request)
	if err != nil {
		return nil, err
	}
	return &domain.Details{ItemRequest: *saved, AuthorName: author.Name, Items: []domain.FulfillingItem{}}, nil
}

func (s *Service) GetByID(ctx context.Context, requestID int64) (*domain.Details, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	details, err := s.decorate(ctx, []*domain.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Details, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Details, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, requests)
}

// decorate joins author names and fulfilling items onto the requests.
func (s *Service) decorate(ctx context.Context, requests []*domain.ItemRequest) ([]*domain.Details, error) {
	ids := make([]int64, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}
	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]domain.FulfillingItem, len(ids))
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		itemsByRequest[*item.RequestID] = append(itemsByRequest[*item.RequestID], domain.FulfillingItem{
			ID:        item.ID,
			Name:      item.Name,
			OwnerID:   item.OwnerID,
			Available: item.Available,
		})
	}

	names := map[int64]string{}
	details := make([]*domain.Details, 0, len(requests))
	for _, request := range requests {
		name, ok := names[request.AuthorID]
		if !ok {
			author, err := s.users.GetByID(ctx, request.AuthorID)
			switch {
			case err == nil:
				name = author.Name
			case !errors.Is(err, userports.ErrNotFound):
				return nil, err
			}
			names[request.AuthorID] = name
		}
		fulfilling := itemsByRequest[request.ID]
		if fulfilling == nil {
			fulfilling = []domain.FulfillingItem{}
		}
		details = append(details, &domain.Details{
			ItemRequest: *request,
			AuthorName:  name,
			Items:       fulfilling,
		})
	}
	return details, nil
}

var _ ports.Service = (*Service)(nil)
