// Package http exposes the booking bounded context over gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/shareit/internal/domains/bookings/adapters/http/mapper"
	"github.com/Apurer/shareit/internal/domains/bookings/application"
	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	itemports "github.com/Apurer/shareit/internal/domains/items/ports"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Handler binds booking routes to the booking service.
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
			case errors.Is(err, ports.ErrNotFound),
				errors.Is(err, userports.ErrNotFound),
				errors.Is(err, itemports.ErrNotFound),
				errors.Is(err, ports.ErrDuplicate):
				return apierrors.ErrNotFound.WithDetail(err.Error()), true
			case errors.Is(err, application.ErrNotOwner),
				errors.Is(err, application.ErrItemUnavailable),
				errors.Is(err, application.ErrInvalidInput):
				return apierrors.ErrValidation.WithDetail(err.Error()), true
			}
			return apierrors.ProblemDetail{}, false
		}),
	}
}

// Register attaches the booking routes to the given group.
func (h *Handler) Register(r gin.IRouter) {
	bookings := r.Group("/bookings")
	bookings.POST("", h.create)
	bookings.GET("", h.listByBooker)
	bookings.GET("/owner", h.listByOwner)
	bookings.GET("/:bookingId", h.getByID)
	bookings.PATCH("/:bookingId", h.approve)
}

type newBookingRequest struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// Post /bookings
func (h *Handler) create(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	var payload newBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	req := ports.NewBooking{ItemID: payload.ItemID}
	if payload.Start != nil {
		req.Start = *payload.Start
	}
	if payload.End != nil {
		req.End = *payload.End
	}
	view, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromView(view))
}

// Patch /bookings/:bookingId?approved=
func (h *Handler) approve(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	bookingID, err := httpx.PathID(c, "bookingId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{"approved": "must be true or false"})
		return
	}
	view, err := h.service.Approve(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromView(view))
}

// Get /bookings/:bookingId
func (h *Handler) getByID(c *gin.Context) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	bookingID, err := httpx.PathID(c, "bookingId")
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	view, err := h.service.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromView(view))
}

// Get /bookings?state=&from=&size=
func (h *Handler) listByBooker(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

// Get /bookings/owner?state=&from=&size=
func (h *Handler) listByOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *Handler) list(c *gin.Context, query func(ctx context.Context, userID int64, state domain.State, page ports.Page) ([]*ports.View, error)) {
	userID, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	state, err := domain.ParseState(c.Query("state"))
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{"state": err.Error()})
		return
	}
	page, fieldErrors := parsePage(c)
	if len(fieldErrors) > 0 {
		h.responder.ValidationFailed(c, fieldErrors)
		return
	}
	views, err := query(c.Request.Context(), userID, state, page)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromViews(views))
}

func parsePage(c *gin.Context) (ports.Page, map[string]string) {
	fieldErrors := map[string]string{}
	page := ports.Page{}
	if raw := c.Query("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			fieldErrors["from"] = "must be a non-negative integer"
		} else {
			page.From = from
		}
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			fieldErrors["size"] = "must be a positive integer"
		} else {
			page.Size = size
		}
	}
	return page, fieldErrors
}
