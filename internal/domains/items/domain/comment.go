package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyComment = errors.New("comment text is required")

// Comment is a renter's note left on an item after a finished booking.
type Comment struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time
}

// NewComment builds a comment ensuring the text is present.
func NewComment(itemID, authorID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	return &Comment{
		Text:     text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  time.Now(),
	}, nil
}

// CommentView decorates a comment with its author's display name.
type CommentView struct {
	Comment
	AuthorName string
}
