package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type RoomRepository interface {
	GetRoom(ctx context.Context, roomID uuid.UUID) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	SaveRoom(ctx context.Context, room *domain.Room) error
	CountRooms(ctx context.Context) (int64, error)
}

type ReservationRepository interface {
	GetByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	FindByOccupant(ctx context.Context, occupantID string) ([]domain.Reservation, error)
	// FindOverlapping returns reservations on roomID whose stay intersects span.
	// With no statuses every status matches; otherwise the match is case-insensitive.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, span domain.DateRange, statuses ...domain.ReservationStatus) ([]domain.Reservation, error)
	// CountActiveOn counts CONFIRMED reservations whose stay covers date.
	CountActiveOn(ctx context.Context, date time.Time) (int64, error)
	CountByRoomAndStatus(ctx context.Context, roomID uuid.UUID, status domain.ReservationStatus) (int64, error)
	Save(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, reservationID uuid.UUID) error
}

// RoomListCache holds rendered room lists between mutations. Entries live
// under a generation: Invalidate starts a new one, so a list rendered from
// data read before the invalidation can never be served after it.
type RoomListCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64, key string) ([]byte, bool, error)
	Set(ctx context.Context, generation int64, key string, payload []byte) error
	Invalidate(ctx context.Context) error
}

type AvailabilityPublisher interface {
	Publish(snapshot domain.AvailabilitySnapshot)
}

type Clock func() time.Time
