package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/metrics"
)

const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpReconcile = "reconcile"
)

// RoomChange describes a committed mutation that affected a room.
type RoomChange struct {
	Op          string
	Room        *domain.Room
	Reservation *domain.Reservation
	// PriceDate is the date the broadcast price is computed for.
	PriceDate time.Time
}

// PostCommitHook runs after a reservation mutation has been persisted. Its
// error never reaches the caller of the mutation.
type PostCommitHook struct {
	Name string
	Run  func(ctx context.Context, change RoomChange) error
}

type hookRunner struct {
	hooks  []PostCommitHook
	logger *zerolog.Logger
}

func (h *hookRunner) add(hook PostCommitHook) {
	h.hooks = append(h.hooks, hook)
}

func (h *hookRunner) run(ctx context.Context, change RoomChange) {
	for _, hook := range h.hooks {
		if err := h.runOne(ctx, hook, change); err != nil {
			metrics.IncHookFailure(hook.Name)
			h.logger.Warn().
				Err(err).
				Str("hook", hook.Name).
				Str("op", change.Op).
				Str("room_id", change.Room.ID.String()).
				Msg("post-commit hook failed")
		}
	}
}

func (h *hookRunner) runOne(ctx context.Context, hook PostCommitHook, change RoomChange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return hook.Run(ctx, change)
}

// BroadcastHook prices the room at the change's date and publishes a snapshot.
// Creation leaves the room untouched, so nothing is published for it.
func BroadcastHook(pricing *PricingService, publisher ports.AvailabilityPublisher) PostCommitHook {
	return PostCommitHook{
		Name: "broadcast",
		Run: func(ctx context.Context, change RoomChange) error {
			if change.Op == OpCreate {
				return nil
			}

			price, err := pricing.Price(ctx, change.Room, change.PriceDate, "")
			if err != nil {
				return fmt.Errorf("compute price: %w", err)
			}

			publisher.Publish(domain.SnapshotOf(change.Room, price))
			return nil
		},
	}
}

// CacheInvalidationHook drops the rendered room list.
func CacheInvalidationHook(cache ports.RoomListCache) PostCommitHook {
	return PostCommitHook{
		Name: "room_cache",
		Run: func(ctx context.Context, _ RoomChange) error {
			return cache.Invalidate(ctx)
		},
	}
}
