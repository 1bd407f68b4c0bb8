package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// RoomListKey prefixes the per-generation hash holding every rendered
	// room list.
	RoomListKey = "rooms:list"
	// RoomListGenerationKey is bumped on every invalidation.
	RoomListGenerationKey = "rooms:list:gen"
)

type RoomListCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRoomListCache(client *goredis.Client, ttl time.Duration) *RoomListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RoomListCache{client: client, ttl: ttl}
}

// RoomListHash is the hash holding the lists of one generation.
func RoomListHash(generation int64) string {
	return fmt.Sprintf("%s:%d", RoomListKey, generation)
}

func (c *RoomListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, RoomListGenerationKey).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read room list generation: %w", err)
	}
	return gen, nil
}

func (c *RoomListCache) Get(ctx context.Context, generation int64, field string) ([]byte, bool, error) {
	payload, err := c.client.HGet(ctx, RoomListHash(generation), field).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read room list cache: %w", err)
	}
	return payload, true, nil
}

// Set writes into the given generation's hash. A write racing an
// invalidation lands in a retired hash that only expires.
func (c *RoomListCache) Set(ctx context.Context, generation int64, field string, payload []byte) error {
	key := RoomListHash(generation)

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, payload)
	pipe.Expire(ctx, key, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write room list cache: %w", err)
	}
	return nil
}

func (c *RoomListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, RoomListGenerationKey).Err(); err != nil {
		return fmt.Errorf("invalidate room list cache: %w", err)
	}
	return nil
}
