package export_test

import (
	"bytes"
	"testing"

	"github.com/srgjo27/hotel_booking/internal/adapter/export"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReservations(t *testing.T) {
	views := []services.ReservationView{
		{
			ID:              "r-1",
			RoomID:          "room-1",
			RoomNumber:      "101",
			RoomType:        "SINGLE",
			OccupantID:      "guest-1",
			CheckInDate:     "2024-06-01",
			CheckOutDate:    "2024-06-03",
			Status:          "CONFIRMED",
			Price:           126,
			DiscountPercent: 0,
		},
		{
			ID:           "r-2",
			RoomID:       "room-2",
			OccupantID:   "guest-2",
			CheckInDate:  "2024-06-02",
			CheckOutDate: "2024-06-04",
			Status:       "PENDING",
			Price:        95,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteReservations(&buf, views))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, export.Columns, rows[0][:len(export.Columns)])
	assert.Equal(t, "r-1", rows[1][0])
	assert.Equal(t, "101", rows[1][2])
	assert.Equal(t, "CONFIRMED", rows[1][7])
	assert.Equal(t, "126", rows[1][8])
	assert.Equal(t, "PENDING", rows[2][7])
}

func TestWriteReservations_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteReservations(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
