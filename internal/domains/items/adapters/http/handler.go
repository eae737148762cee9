// Package http exposes the item bounded context over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/shareit/internal/domains/items/adapters/http/mapper"
	"github.com/Apurer/shareit/internal/domains/items/application"
	"github.com/Apurer/shareit/internal/domains/items/ports"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Handler binds item routes to the item service.
type Handler struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

// NewHandler wires dependencies.
func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service: service,
		responder: apierrors.NewChainedResponder("", func(err error) (apierrors.ProblemDetail, bool) {
			switch {
			case errors.Is(err, ports.ErrNotFound), errors.Is(err, userports.ErrNotFound):
				return apierrors.ErrNotFound.WithDetail(err.Error()), true
			case errors.Is(err, application.ErrNotRented),
				errors.Is(err, application.ErrInvalidInput):
				return apierrors.ErrValidation.WithDetail(err.Error()), true
			}
			return apierrors.ProblemDetail{}, false
		}),
	}
}

// Register attaches the item routes to the given group.
func (h *Handler) Register(r gin.IRouter) {
	items := r.Group("/items")
	items.POST("", h.create)
	items.GET("", h.listByOwner)
	items.GET("/search", h.search)
	items.GET("/:itemId", h.getByID)
	items.PATCH("/:itemId", h.update)
	items.DELETE("/:itemId", h.remove)
	items.POST("/:itemId/comment", h.addComment)
}

type newItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type newCommentRequest struct {
	Text string `json:"text"`
}

// Post /items
func (h *Handler) create(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload newItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if payload.Available == nil {
		h.responder.ValidationFailed(c, map[string]string{"available": "is required"})
		return
	}
	item, err := h.service.Create(c.Request.Context(), userID, ports.NewItem{
		Name:        payload.Name,
		Description: payload.Description,
		Available:   *payload.Available,
		RequestID:   payload.RequestID,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainItem(item))
}

// Get /items
func (h *Handler) listByOwner(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetailsList(details))
}

// Get /items/search?text=
func (h *Handler) search(c *gin.Context) {
	if _, err := httpx.UserID(c); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	items, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainItems(items))
}

// Get /items/:itemId
func (h *Handler) getByID(c *gin.Context) {
	if _, err := httpx.UserID(c); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	itemID, err := httpx.PathID(c, "itemId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetails(details))
}

// Patch /items/:itemId
func (h *Handler) update(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	itemID, err := httpx.PathID(c, "itemId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload updateItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	item, err := h.service.Update(c.Request.Context(), userID, itemID, ports.UpdateItem{
		Name:        payload.Name,
		Description: payload.Description,
		Available:   payload.Available,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainItem(item))
}

// Delete /items/:itemId
func (h *Handler) remove(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	itemID, err := httpx.PathID(c, "itemId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if err := h.service.Remove(c.Request.Context(), userID, itemID); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Post /items/:itemId/comment
func (h *Handler) addComment(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	itemID, err := httpx.PathID(c, "itemId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload newCommentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.AddComment(c.Request.Context(), userID, itemID, payload.Text)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainComment(view))
}
