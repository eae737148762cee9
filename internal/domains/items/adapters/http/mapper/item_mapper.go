package mapper

import (
	"time"

	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
)

// Item represents the transport-level item payload.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemDetails extends the item payload with comments and the neighboring
// booking boundaries the owner sees.
type ItemDetails struct {
	Item
	Comments    []Comment `json:"comments"`
	LastBooking *string   `json:"lastBooking,omitempty"`
	NextBooking *string   `json:"nextBooking,omitempty"`
}

// Comment represents the transport-level comment payload.
type Comment struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

// FromDomainItem converts a domain item into a transport representation.
func FromDomainItem(item *itemdomain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

// FromDomainItems converts a slice of domain items to transport representation.
func FromDomainItems(items []*itemdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}

// FromDomainDetails converts the item read model into a transport
// representation.
func FromDomainDetails(details *itemdomain.Details) ItemDetails {
	if details == nil {
		return ItemDetails{Comments: []Comment{}}
	}
	return ItemDetails{
		Item:        FromDomainItem(&details.Item),
		Comments:    FromDomainComments(details.Comments),
		LastBooking: formatTime(details.LastBookingEnd),
		NextBooking: formatTime(details.NextBookingStart),
	}
}

// FromDomainDetailsList converts a slice of item read models.
func FromDomainDetailsList(list []*itemdomain.Details) []ItemDetails {
	result := make([]ItemDetails, 0, len(list))
	for _, details := range list {
		result = append(result, FromDomainDetails(details))
	}
	return result
}

// FromDomainComment converts a comment view into a transport representation.
func FromDomainComment(view *itemdomain.CommentView) Comment {
	if view == nil {
		return Comment{}
	}
	return Comment{
		ID:         view.ID,
		Text:       view.Text,
		AuthorName: view.AuthorName,
		Created:    view.Created.Format(time.RFC3339),
	}
}

// FromDomainComments converts a slice of comment views.
func FromDomainComments(views []itemdomain.CommentView) []Comment {
	result := make([]Comment, 0, len(views))
	for i := range views {
		result = append(result, FromDomainComment(&views[i]))
	}
	return result
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
