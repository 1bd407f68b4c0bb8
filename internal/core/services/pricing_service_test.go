package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func confirmedHistory(n int, checkIn time.Time) []domain.Reservation {
	out := make([]domain.Reservation, n)
	for i := range out {
		out[i] = domain.Reservation{
			ID:       uuid.New(),
			RoomID:   uuid.New(),
			CheckIn:  checkIn,
			CheckOut: checkIn.AddDate(0, 0, 1),
			Status:   domain.ReservationConfirmed,
		}
	}
	return out
}

func TestPrice_SummerOccupancyLoyalty(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	date := day("2024-07-15")
	room := &domain.Room{ID: uuid.New(), Price: 100}

	mockReservationRepo.On("CountActiveOn", ctx, day("2024-07-16")).Return(int64(3), nil)
	mockReservationRepo.On("CountActiveOn", ctx, date).Return(int64(4), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(10), nil)
	mockReservationRepo.On("FindByOccupant", ctx, "guest-1").Return(confirmedHistory(6, day("2024-03-01")), nil)

	price, err := pricing.Price(ctx, room, date, "guest-1")

	require.NoError(t, err)
	assert.Equal(t, 126.00, price)
}

func TestPrice_GroupDiscount(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	date := day("2024-03-10")
	room := &domain.Room{ID: uuid.New(), Price: 133.33}

	history := []domain.Reservation{
		{ID: uuid.New(), CheckIn: date, CheckOut: date.AddDate(0, 0, 2), Status: domain.ReservationPending},
		{ID: uuid.New(), CheckIn: date, CheckOut: date.AddDate(0, 0, 1), Status: domain.ReservationPending},
		{ID: uuid.New(), CheckIn: date, CheckOut: date.AddDate(0, 0, 1), Status: domain.ReservationCancelled},
	}

	mockReservationRepo.On("CountActiveOn", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(5), nil)
	mockReservationRepo.On("FindByOccupant", ctx, "guest-2").Return(history, nil)

	b, err := pricing.Breakdown(ctx, room, date, "guest-2")

	require.NoError(t, err)
	assert.Equal(t, 0.05, b.Group)
	assert.Equal(t, 0.0, b.Loyalty)
	assert.Equal(t, 126.66, b.Final)
}

func TestPrice_AllDiscountsStayWithinCap(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	date := day("2024-02-01")
	room := &domain.Room{ID: uuid.New(), Price: 200}

	// Ten confirmed stays all checking in on date: loyalty 15%, group 15%,
	// site-wide 10% with 60 rooms booked.
	history := confirmedHistory(10, date)

	mockReservationRepo.On("CountActiveOn", ctx, day("2024-02-02")).Return(int64(0), nil)
	mockReservationRepo.On("CountActiveOn", ctx, date).Return(int64(60), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(1000), nil)
	mockReservationRepo.On("FindByOccupant", ctx, "vip").Return(history, nil)

	b, err := pricing.Breakdown(ctx, room, date, "vip")

	require.NoError(t, err)
	assert.Equal(t, 0.15, b.Loyalty)
	assert.Equal(t, 0.10, b.SiteWide)
	assert.Equal(t, 0.15, b.Group)
	assert.LessOrEqual(t, b.TotalDiscount, 0.5)
	assert.InDelta(t, 0.40, b.TotalDiscount, 1e-9)
	assert.Equal(t, 123.60, b.Final)
}

func TestPrice_DemandUsesNextDay(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	date := day("2024-11-05")
	room := &domain.Room{ID: uuid.New(), Price: 100}

	mockReservationRepo.On("CountActiveOn", ctx, day("2024-11-06")).Return(int64(11), nil)
	mockReservationRepo.On("CountActiveOn", ctx, date).Return(int64(0), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(100), nil)

	b, err := pricing.Breakdown(ctx, room, date, "")

	require.NoError(t, err)
	assert.Equal(t, 0.10, b.Demand)
	assert.Equal(t, 110.00, b.Final)
}

func TestPrice_OccupancySurchargeCapped(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	date := day("2024-10-01")
	room := &domain.Room{ID: uuid.New(), Price: 10}

	mockReservationRepo.On("CountActiveOn", ctx, day("2024-10-02")).Return(int64(0), nil)
	mockReservationRepo.On("CountActiveOn", ctx, date).Return(int64(15), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(5), nil)

	b, err := pricing.Breakdown(ctx, room, date, "")

	require.NoError(t, err)
	assert.Equal(t, 0.5, b.Occupancy)
	assert.Equal(t, 15.0, b.Final)
}

func TestPrice_ZeroRoomsAndMissingPrice(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	room := &domain.Room{ID: uuid.New(), Price: -5}

	mockReservationRepo.On("CountActiveOn", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(0), nil)

	price, err := pricing.Price(ctx, room, day("2024-07-01"), "")

	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestPrice_NonNegativeAndRounded(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()

	mockReservationRepo.On("CountActiveOn", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(9), nil)
	mockReservationRepo.On("FindByOccupant", ctx, "g").Return(confirmedHistory(3, day("2024-01-01")), nil)

	for _, base := range []float64{0, 0.01, 33.333, 99.99, 1234.5678} {
		for _, date := range []string{"2024-01-15", "2024-06-30", "2024-08-31", "2024-12-31"} {
			room := &domain.Room{ID: uuid.New(), Price: base}

			price, err := pricing.Price(ctx, room, day(date), "g")

			require.NoError(t, err)
			assert.GreaterOrEqual(t, price, 0.0)
			assert.InDelta(t, price, float64(int64(price*100+0.5))/100, 1e-9)
		}
	}
}

func TestPrice_StatisticsErrorIsReturned(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	room := &domain.Room{ID: uuid.New(), Price: 100}

	mockReservationRepo.On("CountActiveOn", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("db down"))

	_, err := pricing.Price(ctx, room, day("2024-05-01"), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "count demand")
}

func TestQuote_DiscountPercent(t *testing.T) {
	mockRoomRepo := mocks.NewRoomRepository(t)
	mockReservationRepo := mocks.NewReservationRepository(t)
	pricing := services.NewPricingService(mockRoomRepo, mockReservationRepo)

	ctx := context.Background()
	room := &domain.Room{ID: uuid.New(), Price: 100}

	mockReservationRepo.On("CountActiveOn", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	mockRoomRepo.On("CountRooms", ctx).Return(int64(10), nil)
	mockReservationRepo.On("FindByOccupant", ctx, "g").Return(confirmedHistory(1, day("2024-01-01")), nil)

	quote, err := pricing.Quote(ctx, room, day("2024-04-01"), "g")

	require.NoError(t, err)
	assert.Equal(t, 95.0, quote.Price)
	assert.Equal(t, 5.0, quote.DiscountPercent)
	assert.Equal(t, day("2024-04-01"), quote.Date)
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 0.0, services.DiscountPercent(0, 50))
	assert.Equal(t, 0.0, services.DiscountPercent(100, 126))
	assert.Equal(t, 12.5, services.DiscountPercent(80, 70))
	assert.Equal(t, 33.33, services.DiscountPercent(3, 2))
}
