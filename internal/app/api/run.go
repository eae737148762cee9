// Package api boots the ShareIt HTTP API process.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	bookinghttp "github.com/Apurer/shareit/internal/domains/bookings/adapters/http"
	bookingmemory "github.com/Apurer/shareit/internal/domains/bookings/adapters/memory"
	bookingobs "github.com/Apurer/shareit/internal/domains/bookings/adapters/observability"
	bookingpostgres "github.com/Apurer/shareit/internal/domains/bookings/adapters/persistence/postgres"
	bookingapp "github.com/Apurer/shareit/internal/domains/bookings/application"
	bookingports "github.com/Apurer/shareit/internal/domains/bookings/ports"
	itemhttp "github.com/Apurer/shareit/internal/domains/items/adapters/http"
	itemmemory "github.com/Apurer/shareit/internal/domains/items/adapters/memory"
	itemobs "github.com/Apurer/shareit/internal/domains/items/adapters/observability"
	itempostgres "github.com/Apurer/shareit/internal/domains/items/adapters/persistence/postgres"
	itemapp "github.com/Apurer/shareit/internal/domains/items/application"
	itemports "github.com/Apurer/shareit/internal/domains/items/ports"
	requesthttp "github.com/Apurer/shareit/internal/domains/requests/adapters/http"
	requestmemory "github.com/Apurer/shareit/internal/domains/requests/adapters/memory"
	requestobs "github.com/Apurer/shareit/internal/domains/requests/adapters/observability"
	requestpostgres "github.com/Apurer/shareit/internal/domains/requests/adapters/persistence/postgres"
	requestapp "github.com/Apurer/shareit/internal/domains/requests/application"
	requestports "github.com/Apurer/shareit/internal/domains/requests/ports"
	userhttp "github.com/Apurer/shareit/internal/domains/users/adapters/http"
	usermemory "github.com/Apurer/shareit/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/shareit/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/shareit/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/shareit/internal/domains/users/application"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
	"github.com/Apurer/shareit/internal/platform/migrations"
	platformobservability "github.com/Apurer/shareit/internal/platform/observability"
	platformpostgres "github.com/Apurer/shareit/internal/platform/postgres"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Run boots the ShareIt HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "shareit-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	repos := buildRepositories(db, logger)

	userService := userobs.New(
		userapp.NewService(repos.users),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	itemService := itemobs.New(
		itemapp.NewService(repos.items, repos.comments, repos.users, repos.requests, repos.bookings),
		itemobs.WithLogger(logger),
		itemobs.WithTracer(instruments.Tracer("internal.items.application")),
		itemobs.WithMeter(instruments.Meter("internal.items.application")),
	)
	bookingService := bookingobs.New(
		bookingapp.NewService(repos.bookings, repos.items, repos.users),
		bookingobs.WithLogger(logger),
		bookingobs.WithTracer(instruments.Tracer("internal.bookings.application")),
		bookingobs.WithMeter(instruments.Meter("internal.bookings.application")),
	)
	requestService := requestobs.New(
		requestapp.NewService(repos.requests, repos.users, repos.items),
		requestobs.WithLogger(logger),
		requestobs.WithTracer(instruments.Tracer("internal.requests.application")),
		requestobs.WithMeter(instruments.Meter("internal.requests.application")),
	)

	router := newRouter(serviceName, userService, itemService, bookingService, requestService)

	addr := ":" + cfg.Port
	logger.Info("ShareIt API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("ShareIt API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	users    userports.Repository
	items    itemports.Repository
	comments itemports.CommentRepository
	bookings bookingports.Repository
	requests requestports.Repository
}

// buildRepositories wires Postgres-backed repositories when a connection is
// available and in-memory ones otherwise. All contexts share the same store
// so cross-context reads stay consistent.
func buildRepositories(db *gorm.DB, logger *slog.Logger) repositories {
	if db == nil {
		return repositories{
			users:    usermemory.NewRepository(),
			items:    itemmemory.NewRepository(),
			comments: itemmemory.NewCommentRepository(),
			bookings: bookingmemory.NewRepository(),
			requests: requestmemory.NewRepository(),
		}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		users:    userpostgres.NewRepository(db),
		items:    itempostgres.NewRepository(db),
		comments: itempostgres.NewCommentRepository(db),
		bookings: bookingpostgres.NewRepository(db),
		requests: requestpostgres.NewRepository(db),
	}
}

func newRouter(
	serviceName string,
	users userports.Service,
	items itemports.Service,
	bookings bookingports.Service,
	requests requestports.Service,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpx.RequestID())
	router.Use(otelgin.Middleware(serviceName))

	userhttp.NewHandler(users).Register(router)
	itemhttp.NewHandler(items).Register(router)
	bookinghttp.NewHandler(bookings).Register(router)
	requesthttp.NewHandler(requests).Register(router)

	return router
}
