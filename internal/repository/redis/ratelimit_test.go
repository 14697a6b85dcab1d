package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	redisx "github.com/stagepass/stagepass/internal/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T, limit int, window time.Duration) *SlidingWindowLimiter {
	t.Helper()

	rdb, err := redisx.New(context.Background(), redisx.Config{Addr: "localhost:6379"})
	if err != nil {
		t.Skip("Redis not available")
	}
	t.Cleanup(func() { rdb.Close() })

	prefix := fmt.Sprintf("test:rl:%s", uuid.New())
	return NewSlidingWindowLimiter(rdb, prefix, limit, window)
}

func TestSlidingWindowLimiter_AllowsUpToLimit(t *testing.T) {
	l := testLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, current, _, err := l.Allow(ctx, "user-a")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
		assert.Equal(t, int64(i), current)
	}

	allowed, _, retryAfter, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	l := testLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, _, _, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different key still has its own budget.
	allowed, _, _, err = l.Allow(ctx, "user-b")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	l := testLimiter(t, 1, 200*time.Millisecond)
	ctx := context.Background()

	allowed, _, _, err := l.Allow(ctx, "user-a")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	require.False(t, allowed)

	time.Sleep(250 * time.Millisecond)

	allowed, _, _, err = l.Allow(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, allowed)
}
