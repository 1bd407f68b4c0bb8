package services_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBroadcaster(buffer int) *services.AvailabilityBroadcaster {
	logger := zerolog.New(io.Discard)
	return services.NewAvailabilityBroadcaster(buffer, &logger)
}

func snapshot(price float64) domain.AvailabilitySnapshot {
	return domain.AvailabilitySnapshot{
		RoomID:     uuid.New(),
		RoomNumber: "101",
		Status:     domain.RoomBooked,
		Available:  false,
		Price:      price,
	}
}

func receive(t *testing.T, sub *services.Subscription) domain.AvailabilitySnapshot {
	t.Helper()

	select {
	case s, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
	return domain.AvailabilitySnapshot{}
}

func TestBroadcaster_DeliversExactSnapshot(t *testing.T) {
	b := newBroadcaster(4)
	sub := b.Subscribe(context.Background())
	defer sub.Close()

	want := snapshot(126)
	b.Publish(want)

	assert.Equal(t, want, receive(t, sub))
}

func TestBroadcaster_FansOutToAllSubscribers(t *testing.T) {
	b := newBroadcaster(4)
	first := b.Subscribe(context.Background())
	second := b.Subscribe(context.Background())
	defer first.Close()
	defer second.Close()

	want := snapshot(80)
	b.Publish(want)

	assert.Equal(t, want, receive(t, first))
	assert.Equal(t, want, receive(t, second))
}

func TestBroadcaster_CancelledSubscriberIsRemoved(t *testing.T) {
	b := newBroadcaster(4)

	ctx, cancel := context.WithCancel(context.Background())
	gone := b.Subscribe(ctx)
	live := b.Subscribe(context.Background())
	defer live.Close()

	cancel()
	require.Eventually(t, func() bool { return b.Len() == 1 }, time.Second, 5*time.Millisecond)

	want := snapshot(95)
	b.Publish(want)

	assert.Equal(t, want, receive(t, live))

	_, ok := <-gone.C()
	assert.False(t, ok)
}

func TestBroadcaster_FullSubscriberDroppedOthersUnaffected(t *testing.T) {
	b := newBroadcaster(1)
	slow := b.Subscribe(context.Background())
	fast := b.Subscribe(context.Background())
	defer fast.Close()

	first := snapshot(1)
	second := snapshot(2)

	b.Publish(first)
	assert.Equal(t, first, receive(t, fast))

	// slow never read, so its single slot is still taken.
	b.Publish(second)
	assert.Equal(t, second, receive(t, fast))

	assert.Equal(t, 1, b.Len())

	got, ok := <-slow.C()
	require.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = <-slow.C()
	assert.False(t, ok)
}

func TestBroadcaster_PublishWithoutSubscribers(t *testing.T) {
	b := newBroadcaster(0)

	assert.NotPanics(t, func() { b.Publish(snapshot(10)) })
	assert.Equal(t, 0, b.Len())
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	b := newBroadcaster(1)
	sub := b.Subscribe(context.Background())

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.Len())
	b.Publish(snapshot(5))
}

func TestBroadcaster_CloseEndsSubscriptions(t *testing.T) {
	b := newBroadcaster(4)
	first := b.Subscribe(context.Background())
	second := b.Subscribe(context.Background())

	b.Close()

	for _, sub := range []*services.Subscription{first, second} {
		_, ok := <-sub.C()
		assert.False(t, ok)
	}
	assert.Equal(t, 0, b.Len())

	late := b.Subscribe(context.Background())
	_, ok := <-late.C()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())

	assert.NotPanics(t, func() {
		late.Close()
		b.Publish(snapshot(1))
	})
}
