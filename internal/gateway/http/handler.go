// Package http exposes the gateway's validating edge over gin. Handlers check
// shape and invariants locally, then proxy to the API server and pass its
// responses through unmodified.
package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/shareit/internal/gateway/client"
	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Handler validates and forwards gateway traffic.
type Handler struct {
	api       *client.Client
	responder *apierrors.Responder
}

// NewHandler wires dependencies.
func NewHandler(api *client.Client) *Handler {
	return &Handler{api: api, responder: apierrors.NewResponder("")}
}

// Register attaches all gateway routes to the given router.
func (h *Handler) Register(r gin.IRouter) {
	users := r.Group("/users")
	users.POST("", h.createUser)
	users.GET("", h.listUsers)
	users.GET("/:userId", h.getUser)
	users.PATCH("/:userId", h.updateUser)
	users.DELETE("/:userId", h.removeUser)

	items := r.Group("/items")
	items.POST("", h.createItem)
	items.GET("", h.listItems)
	items.GET("/search", h.searchItems)
	items.GET("/:itemId", h.getItem)
	items.PATCH("/:itemId", h.updateItem)
	items.DELETE("/:itemId", h.removeItem)
	items.POST("/:itemId/comment", h.addComment)

	bookings := r.Group("/bookings")
	bookings.POST("", h.createBooking)
	bookings.GET("", h.listBookings)
	bookings.GET("/owner", h.listOwnerBookings)
	bookings.GET("/:bookingId", h.getBooking)
	bookings.PATCH("/:bookingId", h.approveBooking)

	requests := r.Group("/requests")
	requests.POST("", h.createRequest)
	requests.GET("", h.listRequests)
	requests.GET("/all", h.listAllRequests)
	requests.GET("/:requestId", h.getRequest)
}

// forward writes the upstream response through. The gateway never reshapes
// API payloads.
func (h *Handler) forward(c *gin.Context, resp *client.Response, err error) {
	if err != nil {
		h.responder.Respond(c, apierrors.ErrInternal.WithDetail("upstream request failed: "+err.Error()))
		return
	}
	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		return
	}
	c.Data(resp.Status, "application/json", resp.Body)
}

// userID extracts and validates the identity header, responding on failure.
func (h *Handler) userID(c *gin.Context) (int64, bool) {
	id, err := httpx.UserID(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, responding on failure.
func (h *Handler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := httpx.PathID(c, name)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) bindJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return false
	}
	return true
}

// ctx stamps the request id for upstream correlation.
func (h *Handler) ctx(c *gin.Context) context.Context {
	return client.WithRequestID(c.Request.Context(), c.GetString("request_id"))
}
