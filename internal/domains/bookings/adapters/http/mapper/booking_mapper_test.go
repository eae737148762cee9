package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
	bookingports "github.com/Apurer/shareit/internal/domains/bookings/ports"
	itemdomain "github.com/Apurer/shareit/internal/domains/items/domain"
	userdomain "github.com/Apurer/shareit/internal/domains/users/domain"
)

func TestFromView(t *testing.T) {
	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	view := &bookingports.View{
		Booking: &domain.Booking{
			ID:       5,
			ItemID:   2,
			BookerID: 3,
			Created:  created,
			Start:    created.Add(time.Hour),
			End:      created.Add(2 * time.Hour),
			Status:   domain.StatusWaiting,
		},
		Item:   &itemdomain.Item{ID: 2, Name: "Drill"},
		Booker: &userdomain.User{ID: 3, Name: "Renter"},
	}

	out := FromView(view)

	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "2026-08-30T10:00:00Z", out.CreateDate)
	assert.Equal(t, "2026-08-30T11:00:00Z", out.Start)
	assert.Equal(t, "WAITING", out.Status)
	require.NotNil(t, out.Item)
	assert.Equal(t, "Drill", out.Item.Name)
	require.NotNil(t, out.Booker)
	assert.Equal(t, int64(3), out.Booker.ID)

	payload, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"createDate":"2026-08-30T10:00:00Z"`)
}

func TestFromView_Nil(t *testing.T) {
	out := FromView(nil)
	assert.Zero(t, out.ID)
	assert.Nil(t, out.Item)
	assert.Nil(t, out.Booker)
}
