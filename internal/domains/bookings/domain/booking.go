package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status enumerates booking approval progression.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var (
	ErrInvalidItemID   = errors.New("item id must be greater than zero")
	ErrStartAfterEnd   = errors.New("booking start must precede its end")
	ErrStartInPast     = errors.New("booking start must not be in the past")
	ErrMissingDates    = errors.New("booking start and end are required")
)

// Booking models a time-ranged reservation of an item by a user.
type Booking struct {
	ID       int64
	ItemID   int64
	BookerID int64
	Created  time.Time
	Start    time.Time
	End      time.Time
	Status   Status
}

// NewBooking validates and constructs a WAITING booking. now anchors the
// not-in-the-past check so callers and tests share one clock reading.
func NewBooking(itemID, bookerID int64, start, end, now time.Time) (*Booking, error) {
	if itemID <= 0 {
		return nil, ErrInvalidItemID
	}
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingDates
	}
	if !start.Before(end) {
		return nil, ErrStartAfterEnd
	}
	if start.Before(now) {
		return nil, ErrStartInPast
	}
	return &Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Created:  now,
		Start:    start,
		End:      end,
		Status:   StatusWaiting,
	}, nil
}

// NotWaitingError reports an approve/reject attempt on a booking that already
// left the WAITING state. The message carries the previous status.
type NotWaitingError struct {
	ID     int64
	Status Status
}

func (e *NotWaitingError) Error() string {
	return fmt.Sprintf("booking with id=%d is %s", e.ID, e.Status)
}

// Decide transitions a WAITING booking to APPROVED or REJECTED. The
// transition is one-shot; any other current status fails.
func (b *Booking) Decide(approved bool) error {
	if b.Status != StatusWaiting {
		return &NotWaitingError{ID: b.ID, Status: b.Status}
	}
	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	return nil
}

// Finished reports whether the booking's rental period ended before now.
func (b *Booking) Finished(now time.Time) bool {
	return b.End.Before(now)
}
