//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	"github.com/Apurer/shareit/internal/platform/migrations"
)

func setupBookingsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shareit_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newBooking(itemID, bookerID int64, created, start, end time.Time, status domain.Status) *domain.Booking {
	return &domain.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Created:  created,
		Start:    start,
		End:      end,
		Status:   status,
	}
}

func TestRepository_CreateEnforcesBookerItemUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBookingsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	first := newBooking(1, 2, now, now.Add(time.Hour), now.Add(2*time.Hour), domain.StatusWaiting)
	saved, err := repo.Create(ctx, first)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	dup := newBooking(1, 2, now, now.Add(3*time.Hour), now.Add(4*time.Hour), domain.StatusWaiting)
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicate)

	otherBooker := newBooking(1, 3, now, now.Add(time.Hour), now.Add(2*time.Hour), domain.StatusWaiting)
	_, err = repo.Create(ctx, otherBooker)
	require.NoError(t, err)
}

func TestRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBookingsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	past, err := repo.Create(ctx, newBooking(1, 2, now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour), domain.StatusApproved))
	require.NoError(t, err)
	current, err := repo.Create(ctx, newBooking(2, 2, now.Add(-2*time.Hour), now.Add(-time.Hour), now.Add(time.Hour), domain.StatusApproved))
	require.NoError(t, err)
	future, err := repo.Create(ctx, newBooking(3, 2, now.Add(-time.Hour), now.Add(time.Hour), now.Add(2*time.Hour), domain.StatusWaiting))
	require.NoError(t, err)

	bookerID := int64(2)
	all, err := repo.List(ctx, ports.Query{BookerID: &bookerID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// created DESC: the most recent booking first
	assert.Equal(t, future.ID, all[0].ID)
	assert.Equal(t, past.ID, all[2].ID)

	pastOnly, err := repo.List(ctx, ports.Query{BookerID: &bookerID, EndBefore: &now})
	require.NoError(t, err)
	require.Len(t, pastOnly, 1)
	assert.Equal(t, past.ID, pastOnly[0].ID)

	currentOnly, err := repo.List(ctx, ports.Query{BookerID: &bookerID, CurrentAt: &now})
	require.NoError(t, err)
	require.Len(t, currentOnly, 1)
	assert.Equal(t, current.ID, currentOnly[0].ID)

	status := domain.StatusWaiting
	waitingOnly, err := repo.List(ctx, ports.Query{BookerID: &bookerID, Status: &status})
	require.NoError(t, err)
	require.Len(t, waitingOnly, 1)
	assert.Equal(t, future.ID, waitingOnly[0].ID)

	paged, err := repo.List(ctx, ports.Query{BookerID: &bookerID, Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, current.ID, paged[0].ID)
}

func TestRepository_ListByItemIDsOrderedByStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBookingsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	later, err := repo.Create(ctx, newBooking(1, 2, now, now.Add(3*time.Hour), now.Add(4*time.Hour), domain.StatusWaiting))
	require.NoError(t, err)
	earlier, err := repo.Create(ctx, newBooking(1, 3, now, now.Add(time.Hour), now.Add(2*time.Hour), domain.StatusWaiting))
	require.NoError(t, err)

	list, err := repo.ListByItemIDs(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, earlier.ID, list[0].ID)
	assert.Equal(t, later.ID, list[1].ID)
}

func TestRepository_ExistsFinished(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBookingsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := repo.Create(ctx, newBooking(1, 2, now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour), domain.StatusApproved))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(2, 2, now, now.Add(time.Hour), now.Add(2*time.Hour), domain.StatusWaiting))
	require.NoError(t, err)

	finished, err := repo.ExistsFinished(ctx, 2, 1, now)
	require.NoError(t, err)
	assert.True(t, finished)

	notFinished, err := repo.ExistsFinished(ctx, 2, 2, now)
	require.NoError(t, err)
	assert.False(t, notFinished)

	otherUser, err := repo.ExistsFinished(ctx, 9, 1, now)
	require.NoError(t, err)
	assert.False(t, otherUser)
}
