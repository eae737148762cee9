package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type requestPayload struct {
	Description *string `json:"description"`
}

// Post /requests
func (h *Handler) createRequest(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var payload requestPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	if payload.Description == nil || strings.TrimSpace(*payload.Description) == "" {
		h.responder.ValidationFailed(c, map[string]string{"description": "is required"})
		return
	}
	resp, err := h.api.Post(h.ctx(c), userID, "/requests", payload)
	h.forward(c, resp, err)
}

// Get /requests
func (h *Handler) listRequests(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/requests", nil)
	h.forward(c, resp, err)
}

// Get /requests/all
func (h *Handler) listAllRequests(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/requests/all", nil)
	h.forward(c, resp, err)
}

// Get /requests/:requestId
func (h *Handler) getRequest(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	requestID, ok := h.pathID(c, "requestId")
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/requests/"+strconv.FormatInt(requestID, 10), nil)
	h.forward(c, resp, err)
}
