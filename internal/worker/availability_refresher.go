// Package worker holds the background loops that run beside the HTTP
// server for the lifetime of the process.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AvailabilityReader reads the live seat count for an event.
type AvailabilityReader interface {
	Availability(ctx context.Context, eventID uuid.UUID) (int, error)
}

// AvailabilityCache holds warmed availability figures for the read path.
type AvailabilityCache interface {
	SetAvailability(ctx context.Context, eventID uuid.UUID, seats int, ttl time.Duration) error
}

// Subscriber delivers one call per availability-changed notification
// until the context is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, handler func(ctx context.Context, eventID uuid.UUID)) error
}

// AvailabilityRefresher listens for seat changes and re-warms the cached
// availability figure, so readers mostly see a fresh advisory value
// instead of a cache miss after every booking.
type AvailabilityRefresher struct {
	sub    Subscriber
	reader AvailabilityReader
	cache  AvailabilityCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewAvailabilityRefresher(
	sub Subscriber,
	reader AvailabilityReader,
	cache AvailabilityCache,
	ttl time.Duration,
	logger *slog.Logger,
) *AvailabilityRefresher {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &AvailabilityRefresher{
		sub:    sub,
		reader: reader,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Run blocks until ctx is cancelled. Subscription drops are retried
// with a short backoff, so a redis hiccup does not kill the worker.
func (w *AvailabilityRefresher) Run(ctx context.Context) error {
	w.logger.Info("availability refresher started", "ttl", w.ttl)

	for {
		err := w.sub.Subscribe(ctx, w.refresh)
		if ctx.Err() != nil {
			w.logger.Info("availability refresher stopped")
			return ctx.Err()
		}
		if err != nil {
			w.logger.Error("availability subscription dropped", "error", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("availability refresher stopped")
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func (w *AvailabilityRefresher) refresh(ctx context.Context, eventID uuid.UUID) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	seats, err := w.reader.Availability(ctx, eventID)
	if err != nil {
		w.logger.Warn("availability refresh read failed",
			"event_id", eventID, "error", err)
		return
	}

	if err := w.cache.SetAvailability(ctx, eventID, seats, w.ttl); err != nil {
		w.logger.Warn("availability refresh cache write failed",
			"event_id", eventID, "error", err)
		return
	}

	w.logger.Debug("availability refreshed", "event_id", eventID, "seats", seats)
}
