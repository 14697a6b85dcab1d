package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/metrics"
	"github.com/stagepass/stagepass/internal/repository"
)

// Ledger is the authoritative seat inventory. Reserve is the single
// correctness point of the whole booking flow: it must be atomic at
// the storage layer.
type Ledger interface {
	Availability(ctx context.Context, eventID uuid.UUID) (int, error)
	Reserve(ctx context.Context, eventID uuid.UUID, seats int) (int, error)
	Restore(ctx context.Context, eventID uuid.UUID, seats int) (int, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.BookingWithEvent, error)
}

type EventGetter interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.EventSummary, error)
}

type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, current int64, retryAfter time.Duration, err error)
}

type Invalidator interface {
	InvalidateEvent(ctx context.Context, eventID uuid.UUID) error
}

type Publisher interface {
	PublishAvailabilityChanged(ctx context.Context, eventID uuid.UUID) error
}

type Config struct {
	MinSeats          int
	MaxSeats          int
	ReserveTimeout    time.Duration
	CompensateTimeout time.Duration
}

type Service struct {
	ledger   Ledger
	bookings BookingStore
	events   EventGetter
	cache    Invalidator
	pubsub   Publisher
	limiter  Limiter
	metrics  *metrics.Metrics
	logger   *slog.Logger
	cfg      Config
}

func New(
	ledger Ledger,
	bookings BookingStore,
	events EventGetter,
	cache Invalidator,
	pubsub Publisher,
	limiter Limiter,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.MinSeats <= 0 {
		cfg.MinSeats = domain.MinSeatsPerBooking
	}

	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = domain.MaxSeatsPerBooking
	}

	if cfg.ReserveTimeout <= 0 {
		cfg.ReserveTimeout = 5 * time.Second
	}

	if cfg.CompensateTimeout <= 0 {
		cfg.CompensateTimeout = 10 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		ledger:   ledger,
		bookings: bookings,
		events:   events,
		cache:    cache,
		pubsub:   pubsub,
		limiter:  limiter,
		metrics:  m,
		logger:   logger,
		cfg:      cfg,
	}
}

type SubmitInput struct {
	EventID        uuid.UUID
	UserID         uuid.UUID
	SeatCount      int
	IdempotencyKey string
	RateLimitKey   string
}

// Submit runs one booking attempt: validate, reserve, record. The
// ledger decrement and the booking row are the only writes, and every
// rejection path performs neither. If recording fails after the
// reservation committed, the reserved seats are restored before
// Submit returns.
//
// Returns:
//   - *domain.Booking: the confirmed booking.
//   - error: ErrInvalidSeatCount, ErrUnauthenticated, ErrEventNotFound,
//     ErrSoldOut, *RateLimitedError, or a wrapped storage error.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Booking, error) {
	const op = "service.booking.Submit"

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.BookingDuration.Observe(time.Since(start).Seconds())
		}
	}()

	if in.UserID == uuid.Nil {
		s.count("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if in.SeatCount < s.cfg.MinSeats || in.SeatCount > s.cfg.MaxSeats {
		s.count("invalid_seat_count")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSeatCount)
	}

	if s.limiter != nil && in.RateLimitKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, in.RateLimitKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			s.count("rate_limited")
			return nil, fmt.Errorf("%s: %w", op, &RateLimitedError{RetryAfter: retry})
		}
	}

	// Price is captured here, at submission time. The displayed price a
	// client saw earlier is advisory, like the displayed availability.
	ev, err := s.events.GetEvent(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.count("event_not_found")
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		s.count("error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rctx, cancel := context.WithTimeout(ctx, s.cfg.ReserveTimeout)
	defer cancel()

	if _, err := s.ledger.Reserve(rctx, in.EventID, in.SeatCount); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientSeats):
			s.count("sold_out")
			return nil, fmt.Errorf("%s: %w", op, ErrSoldOut)
		case errors.Is(err, repository.ErrNotFound):
			s.count("event_not_found")
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		default:
			s.count("error")
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	b := &domain.Booking{
		ID:             uuid.New(),
		EventID:        in.EventID,
		UserID:         in.UserID,
		SeatCount:      in.SeatCount,
		TotalCents:     in.SeatCount * ev.PriceStart,
		Status:         domain.BookingConfirmed,
		IdempotencyKey: in.IdempotencyKey,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// Seats are reserved but unrecorded: give them back before
		// surfacing anything to the caller.
		s.compensate(in.EventID, in.SeatCount)

		if errors.Is(err, repository.ErrConflict) && in.IdempotencyKey != "" {
			// A retry of a request that already succeeded. Return the
			// original booking instead of the conflict.
			prev, gerr := s.bookings.GetByIdempotencyKey(ctx, in.IdempotencyKey)
			if gerr == nil {
				s.count("duplicate")
				return prev, nil
			}
		}

		s.count("error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.afterCommit(ctx, in.EventID)
	s.count("confirmed")

	return b, nil
}

// Get retrieves a booking owned by userID.
//
// Returns:
//   - error: ErrBookingNotFound if the booking does not exist or
//     belongs to someone else.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if b.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
	}

	return b, nil
}

// ListByUser lists the user's bookings, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.BookingWithEvent, error) {
	const op = "service.booking.ListByUser"

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	out, err := s.bookings.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// compensate restores reserved seats after a failed recording. It runs
// on a detached context so a cancelled request cannot strand seats.
func (s *Service) compensate(eventID uuid.UUID, seats int) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CompensateTimeout)
	defer cancel()

	if _, err := s.ledger.Restore(ctx, eventID, seats); err != nil {
		s.logger.Error("seat restore failed, ledger is short",
			"event_id", eventID, "seats", seats, "error", err)
		return
	}

	if s.metrics != nil {
		s.metrics.SeatsRestoredTotal.Add(float64(seats))
	}

	s.afterCommit(ctx, eventID)
}

// afterCommit drops cached availability and notifies other instances.
// Best effort: the ledger is already consistent, readers just converge
// a little later if these fail.
func (s *Service) afterCommit(ctx context.Context, eventID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateEvent(ctx, eventID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishAvailabilityChanged(ctx, eventID)
	}
}

func (s *Service) count(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}
