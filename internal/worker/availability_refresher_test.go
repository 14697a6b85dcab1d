package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	seats int
	err   error
}

func (r *stubReader) Availability(ctx context.Context, eventID uuid.UUID) (int, error) {
	return r.seats, r.err
}

type recordingCache struct {
	mu     sync.Mutex
	writes map[uuid.UUID]int
	ttls   map[uuid.UUID]time.Duration
	err    error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		writes: make(map[uuid.UUID]int),
		ttls:   make(map[uuid.UUID]time.Duration),
	}
}

func (c *recordingCache) SetAvailability(ctx context.Context, eventID uuid.UUID, seats int, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes[eventID] = seats
	c.ttls[eventID] = ttl
	return nil
}

type stubSubscriber struct {
	events []uuid.UUID
}

func (s *stubSubscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID uuid.UUID)) error {
	for _, id := range s.events {
		handler(ctx, id)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestAvailabilityRefresher_WarmsCacheOnNotification(t *testing.T) {
	eventID := uuid.New()
	cache := newRecordingCache()
	reader := &stubReader{seats: 7}

	w := NewAvailabilityRefresher(
		&stubSubscriber{events: []uuid.UUID{eventID}},
		reader,
		cache,
		5*time.Second,
		slog.Default(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		_, ok := cache.writes[eventID]
		return ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 7, cache.writes[eventID])
	assert.Equal(t, 5*time.Second, cache.ttls[eventID])
}

func TestAvailabilityRefresher_SkipsCacheOnReadFailure(t *testing.T) {
	cache := newRecordingCache()
	reader := &stubReader{err: errors.New("db down")}

	w := NewAvailabilityRefresher(nil, reader, cache, time.Second, slog.Default())
	w.refresh(context.Background(), uuid.New())

	assert.Empty(t, cache.writes)
}

func TestAvailabilityRefresher_DefaultTTL(t *testing.T) {
	w := NewAvailabilityRefresher(nil, &stubReader{}, newRecordingCache(), 0, slog.Default())
	assert.Equal(t, 5*time.Second, w.ttl)
}
