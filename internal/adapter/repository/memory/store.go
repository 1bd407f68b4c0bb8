// Package memory is a process-local reservation store used for development
// and tests. It keeps copies, so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type Store struct {
	mu           sync.RWMutex
	rooms        map[uuid.UUID]domain.Room
	reservations map[uuid.UUID]domain.Reservation
}

func NewStore() *Store {
	return &Store{
		rooms:        make(map[uuid.UUID]domain.Room),
		reservations: make(map[uuid.UUID]domain.Reservation),
	}
}

func (s *Store) GetRoom(_ context.Context, roomID uuid.UUID) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, domain.NewNotFoundError("room", roomID.String())
	}
	return &room, nil
}

func (s *Store) ListRooms(_ context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (s *Store) SaveRoom(_ context.Context, room *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) CountRooms(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.rooms)), nil
}

func (s *Store) GetByID(_ context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, domain.NewNotFoundError("reservation", reservationID.String())
	}
	return &r, nil
}

func (s *Store) ListAll(_ context.Context) ([]domain.Reservation, error) {
	return s.filter(func(*domain.Reservation) bool { return true }), nil
}

func (s *Store) FindByOccupant(_ context.Context, occupantID string) ([]domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool { return r.OccupantID == occupantID }), nil
}

func (s *Store) FindOverlapping(_ context.Context, roomID uuid.UUID, span domain.DateRange, statuses ...domain.ReservationStatus) ([]domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		return r.RoomID == roomID && matchesStatus(r.Status, statuses) && span.Overlaps(r.CheckIn, r.CheckOut)
	}), nil
}

func (s *Store) CountActiveOn(_ context.Context, date time.Time) (int64, error) {
	day := domain.DateOf(date)
	n := len(s.filter(func(r *domain.Reservation) bool {
		return r.IsConfirmed() && r.ActiveOn(day)
	}))
	return int64(n), nil
}

func (s *Store) CountByRoomAndStatus(_ context.Context, roomID uuid.UUID, status domain.ReservationStatus) (int64, error) {
	n := len(s.filter(func(r *domain.Reservation) bool {
		return r.RoomID == roomID && r.Status.Is(status)
	}))
	return int64(n), nil
}

func (s *Store) Save(_ context.Context, reservation *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations[reservation.ID] = *reservation
	return nil
}

func (s *Store) Delete(_ context.Context, reservationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[reservationID]; !ok {
		return domain.NewNotFoundError("reservation", reservationID.String())
	}
	delete(s.reservations, reservationID)
	return nil
}

func (s *Store) filter(keep func(*domain.Reservation) bool) []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reservation, 0)
	for _, r := range s.reservations {
		if keep(&r) {
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CheckIn.Before(out[j].CheckIn)
	})
	return out
}

func matchesStatus(status domain.ReservationStatus, statuses []domain.ReservationStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if status.Is(st) {
			return true
		}
	}
	return false
}
