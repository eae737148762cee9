package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDescription = errors.New("request description is required")

// ItemRequest is a user's free-text ask for an item not currently listed.
// Requests are never mutated after creation.
type ItemRequest struct {
	ID          int64
	AuthorID    int64
	Description string
	Created     time.Time
}

// NewItemRequest builds a request ensuring the description is present.
func NewItemRequest(authorID int64, description string) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &ItemRequest{
		AuthorID:    authorID,
		Description: description,
		Created:     time.Now(),
	}, nil
}

// FulfillingItem is the slice of an item a request view exposes: the items
// later created to answer the request.
type FulfillingItem struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

// Details decorates a request with its author's display name and the items
// created to fulfill it.
type Details struct {
	ItemRequest
	AuthorName string
	Items      []FulfillingItem
}
