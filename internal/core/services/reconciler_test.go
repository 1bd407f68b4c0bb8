package services_test

import (
	"context"
	"testing"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileAvailability_BooksRoomWithStayToday(t *testing.T) {
	f := newFixture(t)
	f.reservation(t, domain.ReservationConfirmed, "2024-06-08", "2024-06-12")

	changed, err := f.svc.ReconcileAvailability(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, domain.RoomBooked, f.roomState(t).Status)
}

func TestReconcileAvailability_FreesRoomAfterStayEnds(t *testing.T) {
	f := newFixture(t)
	f.reservation(t, domain.ReservationConfirmed, "2024-06-01", "2024-06-05")

	room := f.roomState(t)
	room.SetStatus(domain.RoomBooked)
	require.NoError(t, f.store.SaveRoom(context.Background(), room))

	changed, err := f.svc.ReconcileAvailability(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, domain.RoomAvailable, f.roomState(t).Status)
}

func TestReconcileAvailability_KeepsBookedForUpcomingStay(t *testing.T) {
	f := newFixture(t)
	f.reservation(t, domain.ReservationConfirmed, "2024-06-20", "2024-06-22")

	room := f.roomState(t)
	room.SetStatus(domain.RoomBooked)
	require.NoError(t, f.store.SaveRoom(context.Background(), room))

	changed, err := f.svc.ReconcileAvailability(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, changed)
	assert.Equal(t, domain.RoomBooked, f.roomState(t).Status)
}

func TestReconcileAvailability_SkipsMaintenance(t *testing.T) {
	f := newFixture(t)
	f.reservation(t, domain.ReservationConfirmed, "2024-06-08", "2024-06-12")

	room := f.roomState(t)
	room.SetStatus(domain.RoomUnderMaintenance)
	require.NoError(t, f.store.SaveRoom(context.Background(), room))

	changed, err := f.svc.ReconcileAvailability(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, changed)
	assert.Equal(t, domain.RoomUnderMaintenance, f.roomState(t).Status)
}
