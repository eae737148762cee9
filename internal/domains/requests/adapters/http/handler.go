// Package http exposes the item-request bounded context over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/shareit/internal/domains/requests/adapters/http/mapper"
	"github.com/Apurer/shareit/internal/domains/requests/application"
	"github.com/Apurer/shareit/internal/domains/requests/ports"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Handler binds item-request routes to the request service.
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
			case errors.Is(err, application.ErrInvalidInput):
				return apierrors.ErrValidation.WithDetail(err.Error()), true
			}
			return apierrors.ProblemDetail{}, false
		}),
	}
}

// Register attaches the request routes to the given group.
func (h *Handler) Register(r gin.IRouter) {
	requests := r.Group("/requests")
	requests.POST("", h.create)
	requests.GET("", h.listByAuthor)
	requests.GET("/all", h.listAll)
	requests.GET("/:requestId", h.getByID)
}

type newRequestPayload struct {
	Description string `json:"description"`
}

// Post /requests
func (h *Handler) create(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload newRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.Create(c.Request.Context(), userID, payload.Description)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetails(details))
}

// Get /requests
func (h *Handler) listByAuthor(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetailsList(details))
}

// Get /requests/all
func (h *Handler) listAll(c *gin.Context) {
	if _, err := httpx.UserID(c); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetailsList(details))
}

// Get /requests/:requestId
func (h *Handler) getByID(c *gin.Context) {
	if _, err := httpx.UserID(c); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	requestID, err := httpx.PathID(c, "requestId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	details, err := h.service.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainDetails(details))
}
