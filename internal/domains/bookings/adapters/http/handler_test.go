package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shareit/internal/domains/bookings/application"
	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"
)

// stubService returns canned results so handler tests can pin status codes
// without a full application wiring.
type stubService struct {
	view *ports.View
	err  error
}

func (s *stubService) Create(context.Context, int64, ports.NewBooking) (*ports.View, error) {
	return s.view, s.err
}

func (s *stubService) Approve(context.Context, int64, int64, bool) (*ports.View, error) {
	return s.view, s.err
}

func (s *stubService) GetByID(context.Context, int64, int64) (*ports.View, error) {
	return s.view, s.err
}

func (s *stubService) ListByBooker(context.Context, int64, domain.State, ports.Page) ([]*ports.View, error) {
	return nil, s.err
}

func (s *stubService) ListByOwner(context.Context, int64, domain.State, ports.Page) ([]*ports.View, error) {
	return nil, s.err
}

var _ ports.Service = (*stubService)(nil)

func newBookingRouter(service ports.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(service).Register(router)
	return router
}

func patchApprove(t *testing.T, router *gin.Engine, bookingID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil)
	req.Header.Set("X-Sharer-User-Id", "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestApprove_NotOwnerIsValidationError(t *testing.T) {
	router := newBookingRouter(&stubService{err: application.ErrNotOwner})

	rec := patchApprove(t, router, 1)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "owner")
}

func TestApprove_UnknownBookingIsNotFound(t *testing.T) {
	router := newBookingRouter(&stubService{err: ports.ErrNotFound})

	rec := patchApprove(t, router, 99)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprove_ResponseCarriesCreateDate(t *testing.T) {
	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	view := &ports.View{
		Booking: &domain.Booking{
			ID:       1,
			ItemID:   2,
			BookerID: 3,
			Created:  created,
			Start:    created.Add(time.Hour),
			End:      created.Add(2 * time.Hour),
			Status:   domain.StatusApproved,
		},
		Booker: &userdomain.User{ID: 3, Name: "Renter"},
	}
	router := newBookingRouter(&stubService{view: view})

	rec := patchApprove(t, router, 1)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"createDate":"2026-08-30T10:00:00Z"`)
	assert.Contains(t, rec.Body.String(), `"status":"APPROVED"`)
}
