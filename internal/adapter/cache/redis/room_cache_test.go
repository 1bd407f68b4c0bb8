package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/hotel_booking/internal/adapter/cache/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomListCache_Generation(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectGet(redis.RoomListGenerationKey).RedisNil()
	mockRedis.ExpectGet(redis.RoomListGenerationKey).SetVal("7")

	gen, err := cache.Generation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	gen, err = cache.Generation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), gen)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRoomListCache_GenerationError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectGet(redis.RoomListGenerationKey).SetErr(errors.New("connection refused"))

	_, err := cache.Generation(context.Background())

	assert.Error(t, err)
}

func TestRoomListCache_GetHit(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectHGet("rooms:list:3", "occ-1|2024-06-01").SetVal(`[{"id":"x"}]`)

	payload, ok, err := cache.Get(context.Background(), 3, "occ-1|2024-06-01")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"x"}]`, string(payload))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRoomListCache_GetMiss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectHGet(redis.RoomListHash(0), "-|2024-06-01").RedisNil()

	payload, ok, err := cache.Get(context.Background(), 0, "-|2024-06-01")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRoomListCache_GetError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectHGet(redis.RoomListHash(1), "k").SetErr(errors.New("connection refused"))

	_, ok, err := cache.Get(context.Background(), 1, "k")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRoomListCache_SetWritesFieldAndRefreshesTTL(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, 30*time.Second)

	mockRedis.ExpectTxPipeline()
	mockRedis.ExpectHSet(redis.RoomListHash(2), "k", []byte("[]")).SetVal(1)
	mockRedis.ExpectExpire(redis.RoomListHash(2), 30*time.Second).SetVal(true)
	mockRedis.ExpectTxPipelineExec()

	err := cache.Set(context.Background(), 2, "k", []byte("[]"))

	assert.NoError(t, err)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRoomListCache_Invalidate(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectIncr(redis.RoomListGenerationKey).SetVal(1)

	assert.NoError(t, cache.Invalidate(context.Background()))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRoomListCache_InvalidateError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)

	mockRedis.ExpectIncr(redis.RoomListGenerationKey).SetErr(errors.New("down"))

	err := cache.Invalidate(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalidate room list cache")
}

// A list rendered before an invalidation and written after it must not be
// served to the next reader.
func TestRoomListCache_WriteRacingInvalidationIsNotServed(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewRoomListCache(db, time.Minute)
	ctx := context.Background()

	mockRedis.ExpectGet(redis.RoomListGenerationKey).SetVal("4")
	mockRedis.ExpectIncr(redis.RoomListGenerationKey).SetVal(5)
	mockRedis.ExpectTxPipeline()
	mockRedis.ExpectHSet(redis.RoomListHash(4), "k", []byte(`["stale"]`)).SetVal(1)
	mockRedis.ExpectExpire(redis.RoomListHash(4), time.Minute).SetVal(true)
	mockRedis.ExpectTxPipelineExec()
	mockRedis.ExpectGet(redis.RoomListGenerationKey).SetVal("5")
	mockRedis.ExpectHGet(redis.RoomListHash(5), "k").RedisNil()

	readerGen, err := cache.Generation(ctx)
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, readerGen, "k", []byte(`["stale"]`)))

	nextGen, err := cache.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := cache.Get(ctx, nextGen, "k")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
