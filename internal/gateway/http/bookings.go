package http

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	bookingdomain "github.com/Apurer/shareit/internal/domains/bookings/domain"
)

type bookingPayload struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// Post /bookings
func (h *Handler) createBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var payload bookingPayload
	if !h.bindJSON(c, &payload) {
		return
	}
	fieldErrors := map[string]string{}
	if payload.ItemID <= 0 {
		fieldErrors["itemId"] = "must be a positive integer"
	}
	now := time.Now()
	switch {
	case payload.Start == nil:
		fieldErrors["start"] = "is required"
	case payload.Start.Before(now):
		fieldErrors["start"] = "must not be in the past"
	}
	switch {
	case payload.End == nil:
		fieldErrors["end"] = "is required"
	case payload.End.Before(now):
		fieldErrors["end"] = "must not be in the past"
	case payload.Start != nil && !payload.Start.Before(*payload.End):
		fieldErrors["end"] = "must be after start"
	}
	if len(fieldErrors) > 0 {
		h.responder.ValidationFailed(c, fieldErrors)
		return
	}
	resp, err := h.api.Post(h.ctx(c), userID, "/bookings", payload)
	h.forward(c, resp, err)
}

// Patch /bookings/:bookingId?approved=
func (h *Handler) approveBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "bookingId")
	if !ok {
		return
	}
	approved := c.Query("approved")
	if _, err := strconv.ParseBool(approved); err != nil {
		h.responder.ValidationFailed(c, map[string]string{"approved": "must be true or false"})
		return
	}
	query := url.Values{"approved": []string{approved}}
	resp, err := h.api.Patch(h.ctx(c), userID, "/bookings/"+strconv.FormatInt(bookingID, 10), query, nil)
	h.forward(c, resp, err)
}

// Get /bookings/:bookingId
func (h *Handler) getBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "bookingId")
	if !ok {
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, "/bookings/"+strconv.FormatInt(bookingID, 10), nil)
	h.forward(c, resp, err)
}

// Get /bookings?state=&from=&size=
func (h *Handler) listBookings(c *gin.Context) {
	h.listBookingsPath(c, "/bookings")
}

// Get /bookings/owner?state=&from=&size=
func (h *Handler) listOwnerBookings(c *gin.Context) {
	h.listBookingsPath(c, "/bookings/owner")
}

func (h *Handler) listBookingsPath(c *gin.Context, path string) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	state, err := bookingdomain.ParseState(c.Query("state"))
	if err != nil {
		h.responder.ValidationFailed(c, map[string]string{"state": err.Error()})
		return
	}
	query := url.Values{"state": []string{string(state)}}
	fieldErrors := map[string]string{}
	if raw := c.Query("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			fieldErrors["from"] = "must be a non-negative integer"
		} else {
			query.Set("from", raw)
		}
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			fieldErrors["size"] = "must be a positive integer"
		} else {
			query.Set("size", raw)
		}
	}
	if len(fieldErrors) > 0 {
		h.responder.ValidationFailed(c, fieldErrors)
		return
	}
	resp, err := h.api.Get(h.ctx(c), userID, path, query)
	h.forward(c, resp, err)
}
