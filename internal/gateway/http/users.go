package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type userPayload struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Post /users
func (h *Handler) createUser(c *gin.Context) {
	var payload userPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	fieldErrors := map[string]string{}
	if payload.Email == nil || strings.TrimSpace(*payload.Email) == "" {
		fieldErrors["email"] = "is required"
	} else if !strings.Contains(*payload.Email, "@") {
		fieldErrors["email"] = "must be a valid email address"
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		fieldErrors["name"] = "is required"
	}
	if len(fieldErrors) > 0 {
		h.responder.ValidationFailed(c, fieldErrors)
		return
	}
	resp, err := h.api.Post(h.ctx(c), 0, "/users", payload)
	h.forward(c, resp, err)
}

// Get /users
func (h *Handler) listUsers(c *gin.Context) {
	resp, err := h.api.Get(h.ctx(c), 0, "/users", nil)
	h.forward(c, resp, err)
}

// Get /users/:userId
func (h *Handler) getUser(c *gin.Context) {
	id, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), 0, "/users/"+strconv.FormatInt(id, 10), nil)
	h.forward(c, resp, err)
}

// Patch /users/:userId
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	var payload userPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	if payload.Email != nil && !strings.Contains(*payload.Email, "@") {
		h.responder.ValidationFailed(c, map[string]string{"email": "must be a valid email address"})
		return
	}
	resp, err := h.api.Patch(h.ctx(c), 0, "/users/"+strconv.FormatInt(id, 10), nil, payload)
	h.forward(c, resp, err)
}

// Delete /users/:userId
func (h *Handler) removeUser(c *gin.Context) {
	id, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	resp, err := h.api.Delete(h.ctx(c), 0, "/users/"+strconv.FormatInt(id, 10))
	h.forward(c, resp, err)
}
