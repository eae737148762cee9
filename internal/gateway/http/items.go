package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type itemPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

type commentPayload struct {
	Text *string `json:"text"`
}

// Post /items
func (h *Handler) createItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var payload itemPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	fieldErrors := map[string]string{}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		fieldErrors["name"] = "is required"
	}
	if payload.Description == nil || strings.TrimSpace(*payload.Description) == "" {
		fieldErrors["description"] = "is required"
	}
	if payload.Available == nil {
		fieldErrors["available"] = "is required"
	}
	if len(fieldErrors) > 0 {
		h.responder.ValidationFailed(c, fieldErrors)
		return
	}
	resp, err := h.api.Post(h.ctx(c), userID, "/items", payload)
	h.forward(c, resp, err)
}

// Get /items
func (h *Handler) listItems(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/items", nil)
	h.forward(c, resp, err)
}

// Get /items/search?text=
func (h *Handler) searchItems(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	query := url.Values{"text": []string{c.Query("text")}}
	resp, err := h.api.Get(h.ctx(c), userID, "/items/search", query)
	h.forward(c, resp, err)
}

// Get /items/:itemId
func (h *Handler) getItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/items/"+strconv.FormatInt(itemID, 10), nil)
	h.forward(c, resp, err)
}

// Patch /items/:itemId
func (h *Handler) updateItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var payload itemPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	resp, err := h.api.Patch(h.ctx(c), userID, "/items/"+strconv.FormatInt(itemID, 10), nil, payload)
	h.forward(c, resp, err)
}

// Delete /items/:itemId
func (h *Handler) removeItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.api.Delete(h.ctx(c), userID, "/items/"+strconv.FormatInt(itemID, 10))
	h.forward(c, resp, err)
}

// Post /items/:itemId/comment
func (h *Handler) addComment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}
	var payload commentPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	if payload.Text == nil || strings.TrimSpace(*payload.Text) == "" {
		h.responder.ValidationFailed(c, map[string]string{"text": "is required"})
		return
	}
	resp, err := h.api.Post(h.ctx(c), userID, "/items/"+strconv.FormatInt(itemID, 10)+"/comment", payload)
	h.forward(c, resp, err)
}
