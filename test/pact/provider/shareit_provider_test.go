//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/shareit/test/pact"

	bookinghttp "github.com/Apurer/shareit/internal/domains/bookings/adapters/http"
	bookingmemory "github.com/Apurer/shareit/internal/domains/bookings/adapters/memory"
	bookingobs "github.com/Apurer/shareit/internal/domains/bookings/adapters/observability"
	bookingapp "github.com/Apurer/shareit/internal/domains/bookings/application"
	itemhttp "github.com/Apurer/shareit/internal/domains/items/adapters/http"
	itemmemory "github.com/Apurer/shareit/internal/domains/items/adapters/memory"
	itemobs "github.com/Apurer/shareit/internal/domains/items/adapters/observability"
	itemapp "github.com/Apurer/shareit/internal/domains/items/application"
	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	requesthttp "github.com/Apurer/shareit/internal/domains/requests/adapters/http"
	requestmemory "github.com/Apurer/shareit/internal/domains/requests/adapters/memory"
	requestobs "github.com/Apurer/shareit/internal/domains/requests/adapters/observability"
	requestapp "github.com/Apurer/shareit/internal/domains/requests/application"
	userhttp "github.com/Apurer/shareit/internal/domains/users/adapters/http"
	usermemory "github.com/Apurer/shareit/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/shareit/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/shareit/internal/domains/users/application"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShareItProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateUsersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateItemExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedItem(t)
			}
			return nil, nil
		},
		pacttest.StateItemMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedUser(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	router *gin.Engine
	users  *usermemory.Repository
	items  *itemmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	app := &contractProviderApp{}
	app.reset()

	// The pact verifier keeps one base URL, so the server delegates to
	// whatever router the current state handler built.
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

// reset rebuilds the in-memory stack so each interaction starts from empty
// stores with fresh identifiers.
func (a *contractProviderApp) reset() {
	users := usermemory.NewRepository()
	items := itemmemory.NewRepository()
	comments := itemmemory.NewCommentRepository()
	bookings := bookingmemory.NewRepository()
	requests := requestmemory.NewRepository()
	a.users = users
	a.items = items

	userService := userobs.New(userapp.NewService(users))
	itemService := itemobs.New(itemapp.NewService(items, comments, users, requests, bookings))
	bookingService := bookingobs.New(bookingapp.NewService(bookings, items, users))
	requestService := requestobs.New(requestapp.NewService(requests, users, items))

	router := gin.New()
	router.Use(gin.Recovery())
	userhttp.NewHandler(userService).Register(router)
	itemhttp.NewHandler(itemService).Register(router)
	bookinghttp.NewHandler(bookingService).Register(router)
	requesthttp.NewHandler(requestService).Register(router)
	a.router = router
}

func (a *contractProviderApp) seedUser(t testing.TB) {
	t.Helper()
	user, err := userdomain.NewUser("alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = a.users.Create(context.Background(), user)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedItem(t testing.TB) {
	t.Helper()
	a.seedUser(t)
	item, err := itemdomain.NewItem(pacttest.ExistingUserID, "Drill", "Cordless drill", true, nil)
	require.NoError(t, err)
	_, err = a.items.Create(context.Background(), item)
	require.NoError(t, err)
}
