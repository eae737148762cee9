package mapper

import (
	"time"

	bookingports "github.com/Apurer/shareit/internal/domains/bookings/ports"
)

// Booking represents the transport-level booking payload. Item and booker are
// embedded as short summaries the way clients consume them.
type Booking struct {
	ID         int64   `json:"id"`
	CreateDate string  `json:"createDate"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Status     string  `json:"status"`
	Booker     *Booker `json:"booker,omitempty"`
	Item       *Item   `json:"item,omitempty"`
}

// Booker is the booking-embedded user summary.
type Booker struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Item is the booking-embedded item summary.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromView converts a booking view into a transport representation.
func FromView(view *bookingports.View) Booking {
	if view == nil || view.Booking == nil {
		return Booking{}
	}
	out := Booking{
		ID:         view.Booking.ID,
		CreateDate: view.Booking.Created.Format(time.RFC3339),
		Start:      view.Booking.Start.Format(time.RFC3339),
		End:        view.Booking.End.Format(time.RFC3339),
		Status:     string(view.Booking.Status),
	}
	if view.Booker != nil {
		out.Booker = &Booker{ID: view.Booker.ID, Name: view.Booker.Name}
	}
	if view.Item != nil {
		out.Item = &Item{ID: view.Item.ID, Name: view.Item.Name}
	}
	return out
}

// FromViews converts a slice of booking views.
func FromViews(views []*bookingports.View) []Booking {
	result := make([]Booking, 0, len(views))
	for _, view := range views {
		result = append(result, FromView(view))
	}
	return result
}
