package services

import (
	"context"
	"fmt"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

var endOfTime = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// RunAvailabilityReconciler periodically re-derives room availability from the
// CONFIRMED reservations covering today, so rooms free up once a stay ends.
func (s *ReservationService) RunAvailabilityReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", interval).Msg("availability reconciler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("availability reconciler stopped")
			return
		case <-ticker.C:
			if _, err := s.ReconcileAvailability(ctx); err != nil {
				s.logger.Error().Err(err).Msg("availability reconciliation failed")
			}
		}
	}
}

// ReconcileAvailability returns the number of rooms whose state changed.
// Rooms under maintenance are left alone.
func (s *ReservationService) ReconcileAvailability(ctx context.Context) (int, error) {
	rooms, err := s.roomRepo.ListRooms(ctx)
	if err != nil {
		return 0, fmt.Errorf("list rooms: %w", err)
	}

	today := s.today()
	changed := 0

	for i := range rooms {
		room := &rooms[i]
		if room.Status == domain.RoomUnderMaintenance {
			continue
		}

		unlock := s.locks.lock(room.ID)
		updated, err := s.reconcileRoom(ctx, room, today)
		unlock()

		if err != nil {
			s.logger.Error().Err(err).Str("room_id", room.ID.String()).Msg("failed to reconcile room")
			continue
		}

		if !updated {
			continue
		}

		changed++
		s.logger.Info().
			Str("room_id", room.ID.String()).
			Str("status", string(room.Status)).
			Msg("room availability reconciled")
		s.hooks.run(ctx, RoomChange{Op: OpReconcile, Room: room, PriceDate: today})
	}

	return changed, nil
}

func (s *ReservationService) reconcileRoom(ctx context.Context, room *domain.Room, today time.Time) (bool, error) {
	upcoming, err := s.reservationRepo.FindOverlapping(ctx, room.ID, domain.NewDateRange(today, endOfTime), domain.ReservationConfirmed)
	if err != nil {
		return false, fmt.Errorf("find confirmed reservations: %w", err)
	}

	coversToday := false
	for i := range upcoming {
		if upcoming[i].ActiveOn(today) {
			coversToday = true
			break
		}
	}

	switch {
	case coversToday && room.Status != domain.RoomBooked:
		room.SetStatus(domain.RoomBooked)
	case len(upcoming) == 0 && room.Status == domain.RoomBooked:
		room.SetStatus(domain.RoomAvailable)
	default:
		return false, nil
	}

	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		return false, fmt.Errorf("update room state: %w", err)
	}

	return true, nil
}
