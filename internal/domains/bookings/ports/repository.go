package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
)

var (
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate signals the booker already holds a booking on the item,
	// regardless of its status.
	ErrDuplicate = errors.New("booker already has a booking for this item")
)

// Query is the filter specification the state enum translates into. Nil
// fields add no predicate. Results are ordered by creation timestamp
// descending.
type Query struct {
	BookerID   *int64
	ItemIDs    []int64
	Status     *domain.Status
	CurrentAt  *time.Time
	EndBefore  *time.Time
	StartAfter *time.Time
	Offset     int
	Limit      int
}

// Repository persists bookings. Create must enforce the one-booking-per
// (booker, item) invariant atomically and return ErrDuplicate on breach.
type Repository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, query Query) ([]*domain.Booking, error)
	// ListByItemIDs returns bookings for the given items ordered by start
	// ascending, the order the last/next computation depends on.
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*domain.Booking, error)
	// ExistsFinished reports whether the booker has a booking on the item
	// whose end precedes the given instant.
	ExistsFinished(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error)
}
