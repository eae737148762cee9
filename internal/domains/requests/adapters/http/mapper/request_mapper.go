package mapper

import (
	"time"

	requestdomain "github.com/Apurer/shareit/internal/domains/requests/domain"
)

// ItemRequest represents the transport-level item-request payload.
type ItemRequest struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	AuthorName  string `json:"authorName"`
	Created     string `json:"created"`
	Items       []Item `json:"items"`
}

// Item is the request-embedded summary of an item created to fulfill it.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerID   int64  `json:"ownerId"`
	Available bool   `json:"available"`
}

// FromDomainDetails converts a request read model into a transport
// representation.
func FromDomainDetails(details *requestdomain.Details) ItemRequest {
	if details == nil {
		return ItemRequest{Items: []Item{}}
	}
	items := make([]Item, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, Item{
			ID:        item.ID,
			Name:      item.Name,
			OwnerID:   item.OwnerID,
			Available: item.Available,
		})
	}
	return ItemRequest{
		ID:          details.ID,
		Description: details.Description,
		AuthorName:  details.AuthorName,
		Created:     details.Created.Format(time.RFC3339),
		Items:       items,
	}
}

// FromDomainDetailsList converts a slice of request read models.
func FromDomainDetailsList(list []*requestdomain.Details) []ItemRequest {
	result := make([]ItemRequest, 0, len(list))
	for _, details := range list {
		result = append(result, FromDomainDetails(details))
	}
	return result
}
