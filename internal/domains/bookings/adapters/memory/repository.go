package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory booking persistence adapter. The (booker, item)
// uniqueness check runs under the same lock as the insert, so concurrent
// creates cannot both slip past it.
type Repository struct {
	mu       sync.RWMutex
	bookings map[int64]*domain.Booking
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{bookings: map[int64]*domain.Booking{}}
}

func (r *Repository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	clone := *booking
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.BookerID == clone.BookerID && existing.ItemID == clone.ItemID {
			return nil, ports.ErrDuplicate
		}
	}
	r.nextID++
	clone.ID = r.nextID
	r.bookings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking == nil {
		return nil, errors.New("booking is nil")
	}
	clone := *booking
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.bookings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (r *Repository) List(_ context.Context, query ports.Query) ([]*domain.Booking, error) {
	wantedItems := map[int64]bool{}
	for _, id := range query.ItemIDs {
		wantedItems[id] = true
	}
	r.mu.RLock()
	var list []*domain.Booking
	for _, booking := range r.bookings {
		if !matches(booking, query, wantedItems) {
			continue
		}
		clone := *booking
		list = append(list, &clone)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Created.Equal(list[j].Created) {
			return list[i].Created.After(list[j].Created)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, query.Offset, query.Limit), nil
}

func (r *Repository) ListByItemIDs(_ context.Context, itemIDs []int64) ([]*domain.Booking, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Booking
	for _, booking := range r.bookings {
		if wanted[booking.ItemID] {
			clone := *booking
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
	return list, nil
}

func (r *Repository) ExistsFinished(_ context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, booking := range r.bookings {
		if booking.BookerID == bookerID && booking.ItemID == itemID && booking.End.Before(before) {
			return true, nil
		}
	}
	return false, nil
}

func matches(booking *domain.Booking, query ports.Query, wantedItems map[int64]bool) bool {
	if query.BookerID != nil && booking.BookerID != *query.BookerID {
		return false
	}
	if query.ItemIDs != nil && !wantedItems[booking.ItemID] {
		return false
	}
	if query.Status != nil && booking.Status != *query.Status {
		return false
	}
	if query.CurrentAt != nil {
		if booking.Start.After(*query.CurrentAt) || booking.End.Before(*query.CurrentAt) {
			return false
		}
	}
	if query.EndBefore != nil && !booking.End.Before(*query.EndBefore) {
		return false
	}
	if query.StartAfter != nil && !booking.Start.After(*query.StartAfter) {
		return false
	}
	return true
}

func page(list []*domain.Booking, offset, limit int) []*domain.Booking {
	if offset >= len(list) {
		return []*domain.Booking{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
