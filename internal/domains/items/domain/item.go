package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName        = errors.New("item name is required")
	ErrEmptyDescription = errors.New("item description is required")
)

// Item represents a listable, bookable possession.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	// RequestID links the item to the request it was created to fulfill.
	RequestID *int64
}

// NewItem builds an item ensuring required invariants.
func NewItem(ownerID int64, name, description string, available bool, requestID *int64) (*Item, error) {
	item := &Item{OwnerID: ownerID, Available: available, RequestID: requestID}
	if err := item.SetName(name); err != nil {
		return nil, err
	}
	if err := item.SetDescription(description); err != nil {
		return nil, err
	}
	return item, nil
}

// SetName trims and validates the item name.
func (i *Item) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i.Name = name
	return nil
}

// SetDescription trims and validates the item description.
func (i *Item) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	i.Description = description
	return nil
}

// OwnedBy reports whether the given user owns the item.
func (i *Item) OwnedBy(userID int64) bool {
	return i.OwnerID == userID
}

// Matches reports a case-insensitive substring match on name or description.
func (i *Item) Matches(text string) bool {
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(i.Name), needle) ||
		strings.Contains(strings.ToLower(i.Description), needle)
}

// Details is the owner-facing read model decorating an item with its comments
// and neighboring booking boundaries.
type Details struct {
	Item
	Comments []CommentView
	// LastBookingEnd is the end of the most recent booking finished before now.
	LastBookingEnd *time.Time
	// NextBookingStart is the start of the earliest booking still in the future.
	NextBookingStart *time.Time
}
