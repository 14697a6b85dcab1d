package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redisx "github.com/stagepass/stagepass/internal/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *IdempotencyStore {
	t.Helper()

	rdb, err := redisx.New(context.Background(), redisx.Config{Addr: "localhost:6379"})
	if err != nil {
		t.Skip("Redis not available")
	}
	t.Cleanup(func() { rdb.Close() })

	return NewIdempotencyStore(rdb, time.Minute)
}

func TestIdempotencyStore_LockOnce(t *testing.T) {
	store := testClient(t)
	ctx := context.Background()
	key := KeyIdemBooking(uuid.New(), "req-1")
	defer store.Release(ctx, key)

	locked, err := store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, locked)

	// A second caller with the same key loses the race.
	locked, err = store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, locked)

	isLocked, err := store.IsLocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, isLocked)
}

func TestIdempotencyStore_SaveAndReplayResult(t *testing.T) {
	store := testClient(t)
	ctx := context.Background()
	key := KeyIdemBooking(uuid.New(), "req-2")
	defer store.Release(ctx, key)

	_, ok, err := store.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	// While the lock marker is present, there is no replayable result.
	_, ok, err = store.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	payload := `{"booking_id":"abc","seat_count":2}`
	require.NoError(t, store.SaveResult(ctx, key, payload))

	got, ok, err := store.GetResult(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestIdempotencyStore_ReleaseFreesKey(t *testing.T) {
	store := testClient(t)
	ctx := context.Background()
	key := KeyIdemBooking(uuid.New(), "req-3")

	locked, err := store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	require.NoError(t, store.Release(ctx, key))

	locked, err = store.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, locked)

	store.Release(ctx, key)
}
