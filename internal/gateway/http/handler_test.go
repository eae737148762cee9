package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shareit/internal/gateway/client"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

type upstream struct {
	*httptest.Server
	calls   int
	lastURL string
	lastHdr http.Header
}

func newUpstream() *upstream {
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls++
		u.lastURL = r.URL.String()
		u.lastHdr = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	return u
}

func newTestRouter(u *upstream) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(httpx.RequestID())
	NewHandler(client.New(u.URL)).Register(router)
	return router
}

func TestCreateUser_ValidationRejectsLocally(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	body := `{"email":"not-an-email","name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "Validation Error", problem["title"])
}

func TestCreateUser_Proxies(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	body := `{"email":"alice@example.com","name":"Alice"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, u.calls)
	require.JSONEq(t, `{"id":1}`, rec.Body.String())
	require.NotEmpty(t, u.lastHdr.Get(httpx.HeaderRequestID))
}

func TestCreateItem_RequiresUserHeader(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	body := `{"name":"Drill","description":"Cordless","available":true}`
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
}

func TestCreateItem_ForwardsIdentityHeader(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	body := `{"name":"Drill","description":"Cordless","available":true}`
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "7", u.lastHdr.Get(httpx.HeaderSharerUserID))
}

func TestCreateBooking_RejectsBadDates(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	start := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	end := time.Now().Add(time.Hour).Format(time.RFC3339)
	body := `{"itemId":1,"start":"` + start + `","end":"` + end + `"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
}

func TestListBookings_RejectsUnknownState(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodGet, "/bookings?state=UNSUPPORTED_STATUS", nil)
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
	require.Contains(t, rec.Body.String(), "UNSUPPORTED_STATUS")
}

func TestListBookings_ForwardsPaging(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodGet, "/bookings?state=waiting&from=2&size=5", nil)
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, u.lastURL, "state=WAITING")
	require.Contains(t, u.lastURL, "from=2")
	require.Contains(t, u.lastURL, "size=5")
}

func TestListBookings_RejectsBadPaging(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodGet, "/bookings?from=-1&size=0", nil)
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
}

func TestApproveBooking_RequiresBoolean(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/3?approved=maybe", nil)
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
}

func TestCreateRequest_RequiresDescription(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	router := newTestRouter(u)

	req := httptest.NewRequest(http.MethodPost, "/requests", strings.NewReader(`{}`))
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, u.calls)
}

func TestRateLimit(t *testing.T) {
	u := newUpstream()
	defer u.Close()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(httpx.RequestID())
	router.Use(RateLimit(1, 1))
	NewHandler(client.New(u.URL)).Register(router)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(httpx.HeaderSharerUserID, "7")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, req)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}
