package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	itemports "github.com/Apurer/shareit/internal/domains/items/ports"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
)

// DefaultPageSize bounds booking listings when the caller sends no size.
const DefaultPageSize = 10

// Service orchestrates booking use cases.
type Service struct {
	bookings ports.Repository
	items    itemports.Repository
	users    userports.Repository
	now      func() time.Time
}

func NewService(bookings ports.Repository, items itemports.Repository, users userports.Repository) *Service {
	return &Service{bookings: bookings, items: items, users: users, now: time.Now}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create registers a WAITING booking. The one-booking-per-(booker,item)
// invariant is checked here and enforced again atomically by the repository,
// so concurrent duplicates lose deterministically.
func (s *Service) Create(ctx context.Context, bookerID int64, req ports.NewBooking) (*ports.View, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	existing, err := s.bookings.List(ctx, ports.Query{BookerID: &bookerID, ItemIDs: []int64{req.ItemID}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: booking for user id=%d exists", ports.ErrDuplicate, bookerID)
	}
	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item with id=%d", ErrItemUnavailable, item.ID)
	}
	booking, err := domain.NewBooking(req.ItemID, bookerID, req.Start, req.End, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	return &ports.View{Booking: saved, Item: item, Booker: booker}, nil
}

// Approve lets the item's owner decide a WAITING booking. Approval marks the
// item unavailable; rejection leaves its availability untouched.
func (s *Service) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*ports.View, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.StatusWaiting {
		return nil, mapError(&domain.NotWaitingError{ID: booking.ID, Status: booking.Status})
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(user.ID) {
		return nil, fmt.Errorf("%w: user with id=%d is not owner of item with id=%d", ErrNotOwner, userID, item.ID)
	}
	if err := booking.Decide(approved); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.bookings.Update(ctx, booking)
	if err != nil {
		return nil, err
	}
	if saved.Status == domain.StatusApproved {
		item.Available = false
		if item, err = s.items.Update(ctx, item); err != nil {
			return nil, err
		}
	}
	booker, err := s.users.GetByID(ctx, saved.BookerID)
	if err != nil {
		return nil, err
	}
	return &ports.View{Booking: saved, Item: item, Booker: booker}, nil
}

// GetByID is visible only to the item's owner or the booking's booker; anyone
// else gets not-found so booking existence is not leaked.
func (s *Service) GetByID(ctx context.Context, bookingID, requesterID int64) (*ports.View, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if requester.ID != item.OwnerID && requester.ID != booking.BookerID {
		return nil, fmt.Errorf("%w: user with id=%d can't get booking with id=%d", ports.ErrNotFound, requesterID, bookingID)
	}
	booker, err := s.users.GetByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return &ports.View{Booking: booking, Item: item, Booker: booker}, nil
}

func (s *Service) ListByBooker(ctx context.Context, bookerID int64, state domain.State, page ports.Page) ([]*ports.View, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	query := s.stateQuery(state)
	query.BookerID = &bookerID
	applyPage(&query, page)
	bookings, err := s.bookings.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bookings)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64, state domain.State, page ports.Page) ([]*ports.View, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*ports.View{}, nil
	}
	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	query := s.stateQuery(state)
	query.ItemIDs = itemIDs
	applyPage(&query, page)
	bookings, err := s.bookings.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bookings)
}

// stateQuery translates the listing state enum into the repository's filter
// specification.
func (s *Service) stateQuery(state domain.State) ports.Query {
	now := s.now()
	switch state {
	case domain.StateCurrent:
		return ports.Query{CurrentAt: &now}
	case domain.StatePast:
		return ports.Query{EndBefore: &now}
	case domain.StateFuture:
		return ports.Query{StartAfter: &now}
	case domain.StateWaiting:
		status := domain.StatusWaiting
		return ports.Query{Status: &status}
	case domain.StateRejected:
		status := domain.StatusRejected
		return ports.Query{Status: &status}
	default:
		return ports.Query{}
	}
}

func applyPage(query *ports.Query, page ports.Page) {
	if page.From > 0 {
		query.Offset = page.From
	}
	query.Limit = page.Size
	if query.Limit <= 0 {
		query.Limit = DefaultPageSize
	}
}

func (s *Service) views(ctx context.Context, bookings []*domain.Booking) ([]*ports.View, error) {
	items := map[int64]*itemdomain.Item{}
	bookers := map[int64]*userdomain.User{}
	views := make([]*ports.View, 0, len(bookings))
	for _, booking := range bookings {
		item, ok := items[booking.ItemID]
		if !ok {
			var err error
			if item, err = s.items.GetByID(ctx, booking.ItemID); err != nil {
				return nil, err
			}
			items[booking.ItemID] = item
		}
		booker, ok := bookers[booking.BookerID]
		if !ok {
			var err error
			if booker, err = s.users.GetByID(ctx, booking.BookerID); err != nil {
				return nil, err
			}
			bookers[booking.BookerID] = booker
		}
		views = append(views, &ports.View{Booking: booking, Item: item, Booker: booker})
	}
	return views, nil
}

var _ ports.Service = (*Service)(nil)
