package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingports "github.com/Apurer/shareit/internal/domains/bookings/ports"
	"github.com/Apurer/shareit/internal/domains/items/domain"
	"github.com/Apurer/shareit/internal/domains/items/ports"
	requestports "github.com/Apurer/shareit/internal/domains/requests/ports"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
)

// Service orchestrates item and comment use cases.
type Service struct {
	items    ports.Repository
	comments ports.CommentRepository
	users    userports.Repository
	requests requestports.Repository
	bookings bookingports.Repository
	now      func() time.Time
}

func NewService(
	items ports.Repository,
	comments ports.CommentRepository,
	users userports.Repository,
	requests requestports.Repository,
	bookings bookingports.Repository,
) *Service {
	return &Service{
		items:    items,
		comments: comments,
		users:    users,
		requests: requests,
		bookings: bookings,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, ownerID int64, req ports.NewItem) (*domain.Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}
	item, err := domain.NewItem(ownerID, req.Name, req.Description, req.Available, req.RequestID)
	if err != nil {
		return nil, mapError(err)
	}
	return s.items.Create(ctx, item)
}

func (s *Service) Update(ctx context.Context, userID, itemID int64, patch ports.UpdateItem) (*domain.Item, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := item.SetName(*patch.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.Description != nil {
		if err := item.SetDescription(*patch.Description); err != nil {
			return nil, mapError(err)
		}
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}
	return s.items.Update(ctx, item)
}

func (s *Service) Remove(ctx context.Context, userID, itemID int64) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.items.Delete(ctx, itemID)
}

func (s *Service) GetByID(ctx context.Context, itemID int64) (*domain.Details, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentViews(ctx, []int64{item.ID})
	if err != nil {
		return nil, err
	}
	return &domain.Details{Item: *item, Comments: comments[item.ID]}, nil
}

// ListByOwner returns the owner's items decorated with comments and the
// last/next booking boundaries.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Details, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	comments, err := s.commentViews(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]bookingBoundary, len(itemIDs))
	for _, b := range bookings {
		byItem[b.ItemID] = append(byItem[b.ItemID], bookingBoundary{start: b.Start, end: b.End})
	}

	now := s.now()
	details := make([]*domain.Details, 0, len(items))
	for _, item := range items {
		last, next := lastAndNext(byItem[item.ID], now)
		details = append(details, &domain.Details{
			Item:             *item,
			Comments:         comments[item.ID],
			LastBookingEnd:   last,
			NextBookingStart: next,
		})
	}
	return details, nil
}

// Search matches available items by case-insensitive substring on name or
// description. Blank text short-circuits to an empty result, not an error.
func (s *Service) Search(ctx context.Context, text string) ([]*domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*domain.Item{}, nil
	}
	return s.items.Search(ctx, text)
}

// AddComment records a renter's comment. It requires a booking by the same
// user on the same item whose end precedes now.
func (s *Service) AddComment(ctx context.Context, userID, itemID int64, text string) (*domain.CommentView, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	finished, err := s.bookings.ExistsFinished(ctx, userID, item.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, fmt.Errorf("%w: user with id=%d has not booked item with id=%d", ErrNotRented, userID, itemID)
	}
	comment, err := domain.NewComment(item.ID, author.ID, text)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	return &domain.CommentView{Comment: *saved, AuthorName: author.Name}, nil
}

type bookingBoundary struct {
	start time.Time
	end   time.Time
}

// lastAndNext scans bookings ordered ascending by start. The last value is
// the end of the most recent finished booking; the next value is the start of
// the first future booking, and the scan stops there so the earliest future
// booking wins.
func lastAndNext(bookings []bookingBoundary, now time.Time) (last, next *time.Time) {
	for _, b := range bookings {
		if b.end.Before(now) {
			end := b.end
			last = &end
		}
		if now.Before(b.start) {
			start := b.start
			next = &start
			break
		}
	}
	return last, next
}

// ownedItem loads an item and gates mutation on ownership. A foreign user
// gets not-found rather than forbidden so item existence is not leaked.
func (s *Service) ownedItem(ctx context.Context, userID, itemID int64) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if !item.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: user with id=%d is not owner of item with id=%d", ports.ErrNotFound, userID, itemID)
	}
	return item, nil
}

// commentViews loads comments for the given items and resolves author names.
func (s *Service) commentViews(ctx context.Context, itemIDs []int64) (map[int64][]domain.CommentView, error) {
	comments, err := s.comments.ListByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	names := map[int64]string{}
	views := make(map[int64][]domain.CommentView, len(itemIDs))
	for _, comment := range comments {
		name, ok := names[comment.AuthorID]
		if !ok {
			author, err := s.users.GetByID(ctx, comment.AuthorID)
			switch {
			case err == nil:
				name = author.Name
			case !errors.Is(err, userports.ErrNotFound):
				return nil, err
			}
			names[comment.AuthorID] = name
		}
		views[comment.ItemID] = append(views[comment.ItemID], domain.CommentView{Comment: *comment, AuthorName: name})
	}
	return views, nil
}

var _ ports.Service = (*Service)(nil)
