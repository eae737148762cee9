package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/shareit/internal/domains/bookings/adapters/memory"
	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	"github.com/Apurer/shareit/internal/domains/bookings/ports"
	itemmemory "github.com/Apurer/shareit/internal/domains/items/adapters/memory"
	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	usermemory "github.com/Apurer/shareit/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"
	userports "github.com/Apurer/shareit/internal/domains/users/ports"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	users *usermemory.Repository
	items *itemmemory.Repository

	owner  *userdomain.User
	booker *userdomain.User
	item   *itemdomain.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := usermemory.NewRepository()
	items := itemmemory.NewRepository()
	bookings := memory.NewRepository()
	svc := NewService(bookings, items, users).WithClock(func() time.Time { return testNow })

	f := &fixture{svc: svc, users: users, items: items}
	f.owner = f.addUser(t, "owner@example.com", "Owner")
	f.booker = f.addUser(t, "booker@example.com", "Booker")
	f.item = f.addItem(t, f.owner.ID, "Drill", true)
	return f
}

func (f *fixture) addUser(t *testing.T, email, name string) *userdomain.User {
	t.Helper()
	user, err := userdomain.NewUser(email, name)
	require.NoError(t, err)
	saved, err := f.users.Create(context.Background(), user)
	require.NoError(t, err)
	return saved
}

func (f *fixture) addItem(t *testing.T, ownerID int64, name string, available bool) *itemdomain.Item {
	t.Helper()
	item, err := itemdomain.NewItem(ownerID, name, name+" description", available, nil)
	require.NoError(t, err)
	saved, err := f.items.Create(context.Background(), item)
	require.NoError(t, err)
	return saved
}

func (f *fixture) book(t *testing.T, bookerID, itemID int64, start, end time.Time) *ports.View {
	t.Helper()
	view, err := f.svc.Create(context.Background(), bookerID, ports.NewBooking{ItemID: itemID, Start: start, End: end})
	require.NoError(t, err)
	return view
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	view := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.Equal(t, domain.StatusWaiting, view.Booking.Status)
	require.Equal(t, f.item.ID, view.Item.ID)
	require.Equal(t, f.booker.ID, view.Booker.ID)
}

func TestCreateBooking_UnknownBooker(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), 99, ports.NewBooking{ItemID: f.item.ID, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)})
	require.ErrorIs(t, err, userports.ErrNotFound)
}

func TestCreateBooking_UnavailableItem(t *testing.T) {
	f := newFixture(t)
	unavailable := f.addItem(t, f.owner.ID, "Saw", false)

	_, err := f.svc.Create(context.Background(), f.booker.ID, ports.NewBooking{ItemID: unavailable.ID, Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)})
	require.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCreateBooking_Duplicate(t *testing.T) {
	f := newFixture(t)

	f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	_, err := f.svc.Create(context.Background(), f.booker.ID, ports.NewBooking{ItemID: f.item.ID, Start: testNow.Add(3 * time.Hour), End: testNow.Add(4 * time.Hour)})
	require.ErrorIs(t, err, ports.ErrDuplicate)
}

func TestCreateBooking_StartInPast(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.booker.ID, ports.NewBooking{ItemID: f.item.ID, Start: testNow.Add(-time.Hour), End: testNow.Add(time.Hour)})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrStartInPast)
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	view, err := f.svc.Approve(context.Background(), f.owner.ID, created.Booking.ID, true)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, view.Booking.Status)
	require.False(t, view.Item.Available)

	stored, err := f.items.GetByID(context.Background(), f.item.ID)
	require.NoError(t, err)
	require.False(t, stored.Available)
}

func TestApprove_RejectKeepsItemAvailable(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	view, err := f.svc.Approve(context.Background(), f.owner.ID, created.Booking.ID, false)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, view.Booking.Status)
	require.True(t, view.Item.Available)

	stored, err := f.items.GetByID(context.Background(), f.item.ID)
	require.NoError(t, err)
	require.True(t, stored.Available)
}

func TestApprove_NotOwner(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	_, err := f.svc.Approve(context.Background(), f.booker.ID, created.Booking.ID, true)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	_, err := f.svc.Approve(context.Background(), f.owner.ID, created.Booking.ID, false)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), f.owner.ID, created.Booking.ID, true)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "REJECTED")
}

func TestApprove_UnknownUser(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	_, err := f.svc.Approve(context.Background(), 99, created.Booking.ID, true)
	require.ErrorIs(t, err, userports.ErrNotFound)
}

func TestApprove_UnknownBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), f.owner.ID, 99, true)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetByID_VisibleToOwnerAndBooker(t *testing.T) {
	f := newFixture(t)
	created := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	_, err := f.svc.GetByID(context.Background(), created.Booking.ID, f.owner.ID)
	require.NoError(t, err)
	_, err = f.svc.GetByID(context.Background(), created.Booking.ID, f.booker.ID)
	require.NoError(t, err)

	stranger := f.addUser(t, "stranger@example.com", "Stranger")
	_, err = f.svc.GetByID(context.Background(), created.Booking.ID, stranger.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListByBooker_States(t *testing.T) {
	f := newFixture(t)
	second := f.addItem(t, f.owner.ID, "Hammer", true)
	third := f.addItem(t, f.owner.ID, "Ladder", true)

	f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	rejected := f.book(t, f.booker.ID, second.ID, testNow.Add(3*time.Hour), testNow.Add(4*time.Hour))
	f.book(t, f.booker.ID, third.ID, testNow.Add(24*time.Hour), testNow.Add(25*time.Hour))

	_, err := f.svc.Approve(context.Background(), f.owner.ID, rejected.Booking.ID, false)
	require.NoError(t, err)

	all, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateAll, ports.Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	waitingViews, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateWaiting, ports.Page{})
	require.NoError(t, err)
	require.Len(t, waitingViews, 2)

	rejectedViews, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateRejected, ports.Page{})
	require.NoError(t, err)
	require.Len(t, rejectedViews, 1)
	require.Equal(t, rejected.Booking.ID, rejectedViews[0].Booking.ID)

	futureViews, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateFuture, ports.Page{})
	require.NoError(t, err)
	require.Len(t, futureViews, 3)
}

func TestListByBooker_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListByBooker(context.Background(), 99, domain.StateAll, ports.Page{})
	require.ErrorIs(t, err, userports.ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	f := newFixture(t)
	other := f.addUser(t, "other@example.com", "Other")
	otherItem := f.addItem(t, other.ID, "Tent", true)

	mine := f.book(t, f.booker.ID, f.item.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	f.book(t, f.booker.ID, otherItem.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))

	views, err := f.svc.ListByOwner(context.Background(), f.owner.ID, domain.StateAll, ports.Page{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, mine.Booking.ID, views[0].Booking.ID)

	empty, err := f.svc.ListByOwner(context.Background(), f.booker.ID, domain.StateAll, ports.Page{})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestListByBooker_Paging(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		item := f.addItem(t, f.owner.ID, "Tool", true)
		f.book(t, f.booker.ID, item.ID, testNow.Add(time.Duration(i+1)*time.Hour), testNow.Add(time.Duration(i+2)*time.Hour))
	}

	page, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateAll, ports.Page{From: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)

	tail, err := f.svc.ListByBooker(context.Background(), f.booker.ID, domain.StateAll, ports.Page{From: 2, Size: 10})
	require.NoError(t, err)
	require.Len(t, tail, 1)
}
