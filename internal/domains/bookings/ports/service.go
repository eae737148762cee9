package ports

import (
	"context"
	"time"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"
)

// NewBooking carries the booking-create input.
type NewBooking struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Page bounds a listing request. Zero Size means the default page size.
type Page struct {
	From int
	Size int
}

// View joins a booking with its item and booker for transport mapping.
type View struct {
	Booking *domain.Booking
	Item    *itemdomain.Item
	Booker  *userdomain.User
}

// Service exposes booking bounded context use cases to adapters.
type Service interface {
	Create(ctx context.Context, bookerID int64, req NewBooking) (*View, error)
	Approve(ctx context.Context, userID, bookingID int64, approved bool) (*View, error)
	GetByID(ctx context.Context, bookingID, requesterID int64) (*View, error)
	ListByBooker(ctx context.Context, bookerID int64, state domain.State, page Page) ([]*View, error)
	ListByOwner(ctx context.Context, ownerID int64, state domain.State, page Page) ([]*View, error)
}
