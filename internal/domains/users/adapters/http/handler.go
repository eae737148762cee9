// Package http exposes the user bounded context over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/shareit/internal/domains/users/adapters/http/mapper"
	"github.com/Apurer/shareit/internal/domains/users/application"
	"github.com/Apurer/shareit/internal/domains/users/ports"
	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Handler binds user routes to the user service.
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
			case errors.Is(err, ports.ErrNotFound):
				return apierrors.ErrNotFound.WithDetail(err.Error()), true
			case errors.Is(err, ports.ErrEmailTaken):
				return apierrors.ErrConflict.WithDetail(err.Error()), true
			case errors.Is(err, application.ErrInvalidInput):
				return apierrors.ErrValidation.WithDetail(err.Error()), true
			}
			return apierrors.ProblemDetail{}, false
		}),
	}
}

// Register attaches the user routes to the given group.
func (h *Handler) Register(r gin.IRouter) {
	users := r.Group("/users")
	users.POST("", h.create)
	users.GET("", h.list)
	users.GET("/:userId", h.getByID)
	users.PATCH("/:userId", h.update)
	users.DELETE("/:userId", h.remove)
}

type newUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type updateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Post /users
func (h *Handler) create(c *gin.Context) {
	var payload newUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	user, err := h.service.Create(c.Request.Context(), payload.Email, payload.Name)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUser(user))
}

// Get /users
func (h *Handler) list(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUsers(users))
}

// Get /users/:userId
func (h *Handler) getByID(c *gin.Context) {
	id, err := httpx.PathID(c, "userId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUser(user))
}

// Patch /users/:userId
func (h *Handler) update(c *gin.Context) {
	id, err := httpx.PathID(c, "userId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload updateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	user, err := h.service.Update(c.Request.Context(), id, ports.UpdateUser{Email: payload.Email, Name: payload.Name})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUser(user))
}

// Delete /users/:userId
func (h *Handler) remove(c *gin.Context) {
	id, err := httpx.PathID(c, "userId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
