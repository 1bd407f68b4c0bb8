package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/platform/metrics"
)

const defaultSubscriberBuffer = 16

// AvailabilityBroadcaster fans availability snapshots out to live
// subscribers. Delivery is at-most-once with no replay: a subscriber that
// cannot take a snapshot is dropped and the others still receive it.
type AvailabilityBroadcaster struct {
	mu          sync.RWMutex
	subscribers map[uint64]*Subscription
	nextID      uint64
	closed      bool
	buffer      int
	logger      *zerolog.Logger
}

type Subscription struct {
	id     uint64
	ch     chan domain.AvailabilitySnapshot
	done   chan struct{}
	once   sync.Once
	parent *AvailabilityBroadcaster
}

func NewAvailabilityBroadcaster(buffer int, logger *zerolog.Logger) *AvailabilityBroadcaster {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	return &AvailabilityBroadcaster{
		subscribers: make(map[uint64]*Subscription),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a new subscriber. It is removed when ctx is done or
// Close is called, whichever happens first.
func (b *AvailabilityBroadcaster) Subscribe(ctx context.Context) *Subscription {
	b.mu.Lock()
	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		ch:     make(chan domain.AvailabilitySnapshot, b.buffer),
		done:   make(chan struct{}),
		parent: b,
	}
	if b.closed {
		sub.once.Do(func() {
			close(sub.ch)
			close(sub.done)
		})
		b.mu.Unlock()
		return sub
	}
	b.subscribers[sub.id] = sub
	n := len(b.subscribers)
	b.mu.Unlock()

	metrics.SetSubscribers(n)
	b.logger.Debug().Uint64("subscriber", sub.id).Msg("availability subscriber added")

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub
}

func (b *AvailabilityBroadcaster) Publish(snapshot domain.AvailabilitySnapshot) {
	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		if !sub.offer(snapshot) {
			metrics.IncSnapshotDropped()
			b.logger.Warn().
				Uint64("subscriber", sub.id).
				Str("room_id", snapshot.RoomID.String()).
				Msg("availability subscriber dropped")
			sub.Close()
		}
	}
}

// Close ends every live subscription and hands out closed ones from then on.
func (b *AvailabilityBroadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

func (b *AvailabilityBroadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// C yields snapshots until the subscription is closed.
func (s *Subscription) C() <-chan domain.AvailabilitySnapshot {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		// Deregister before closing so Publish never sends on a closed channel.
		s.parent.mu.Lock()
		delete(s.parent.subscribers, s.id)
		n := len(s.parent.subscribers)
		close(s.ch)
		s.parent.mu.Unlock()

		close(s.done)
		metrics.SetSubscribers(n)
		s.parent.logger.Debug().Uint64("subscriber", s.id).Msg("availability subscriber removed")
	})
}

// offer hands the snapshot over without blocking.
func (s *Subscription) offer(snapshot domain.AvailabilitySnapshot) (ok bool) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()

	if _, live := s.parent.subscribers[s.id]; !live {
		return true
	}

	select {
	case s.ch <- snapshot:
		return true
	default:
		return false
	}
}
