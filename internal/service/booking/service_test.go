package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger reproduces the storage-level contract: Reserve is an
// atomic compare-and-decrement, Restore clamps at capacity.
type fakeLedger struct {
	mu       sync.Mutex
	seats    map[uuid.UUID]int
	capacity map[uuid.UUID]int

	reserveCalls int
	restoreCalls int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		seats:    make(map[uuid.UUID]int),
		capacity: make(map[uuid.UUID]int),
	}
}

func (l *fakeLedger) add(eventID uuid.UUID, capacity int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seats[eventID] = capacity
	l.capacity[eventID] = capacity
}

func (l *fakeLedger) available(eventID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seats[eventID]
}

func (l *fakeLedger) Availability(ctx context.Context, eventID uuid.UUID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.seats[eventID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return n, nil
}

func (l *fakeLedger) Reserve(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reserveCalls++

	n, ok := l.seats[eventID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if n < seats {
		return 0, repository.ErrInsufficientSeats
	}

	l.seats[eventID] = n - seats
	return n - seats, nil
}

func (l *fakeLedger) Restore(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.restoreCalls++

	n, ok := l.seats[eventID]
	if !ok {
		return 0, repository.ErrNotFound
	}

	n += seats
	if cap := l.capacity[eventID]; n > cap {
		n = cap
	}
	l.seats[eventID] = n
	return n, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*domain.Booking
	byIdem   map[string]*domain.Booking
	failWith error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		byID:   make(map[uuid.UUID]*domain.Booking),
		byIdem: make(map[string]*domain.Booking),
	}
}

func (s *fakeBookingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *fakeBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	if b.IdempotencyKey != "" {
		if _, exists := s.byIdem[b.IdempotencyKey]; exists {
			return repository.ErrConflict
		}
	}

	cp := *b
	cp.BookingDate = time.Now()
	cp.CreatedAt = time.Now()
	s.byID[b.ID] = &cp
	if b.IdempotencyKey != "" {
		s.byIdem[b.IdempotencyKey] = &cp
	}

	b.BookingDate = cp.BookingDate
	b.CreatedAt = cp.CreatedAt
	return nil
}

func (s *fakeBookingStore) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *fakeBookingStore) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byIdem[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *fakeBookingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.BookingWithEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.BookingWithEvent
	for _, b := range s.byID {
		if b.UserID == userID {
			out = append(out, domain.BookingWithEvent{Booking: *b})
		}
	}
	return out, nil
}

type fakeEventGetter struct {
	events map[uuid.UUID]*domain.EventSummary
}

func (g *fakeEventGetter) GetEvent(ctx context.Context, id uuid.UUID) (*domain.EventSummary, error) {
	ev, ok := g.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ev, nil
}

type fakeLimiter struct {
	allowed    bool
	retryAfter time.Duration
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, int64, time.Duration, error) {
	return l.allowed, 0, l.retryAfter, nil
}

type fixture struct {
	svc     *Service
	ledger  *fakeLedger
	store   *fakeBookingStore
	events  *fakeEventGetter
	eventID uuid.UUID
	userID  uuid.UUID
}

func newFixture(t *testing.T, capacity, priceCents int) *fixture {
	t.Helper()

	ledger := newFakeLedger()
	store := newFakeBookingStore()
	eventID := uuid.New()
	ledger.add(eventID, capacity)

	events := &fakeEventGetter{events: map[uuid.UUID]*domain.EventSummary{
		eventID: {Event: domain.Event{
			ID:             eventID,
			Title:          "Night Show",
			PriceStart:     priceCents,
			Capacity:       capacity,
			AvailableSeats: capacity,
		}},
	}}

	svc := New(ledger, store, events, nil, nil, nil, nil, nil, Config{})

	return &fixture{
		svc:     svc,
		ledger:  ledger,
		store:   store,
		events:  events,
		eventID: eventID,
		userID:  uuid.New(),
	}
}

func TestSubmit_SeatCountBounds(t *testing.T) {
	tests := []struct {
		name      string
		seatCount int
		wantErr   error
	}{
		{name: "zero seats", seatCount: 0, wantErr: ErrInvalidSeatCount},
		{name: "negative seats", seatCount: -3, wantErr: ErrInvalidSeatCount},
		{name: "one seat", seatCount: 1, wantErr: nil},
		{name: "ten seats", seatCount: 10, wantErr: nil},
		{name: "eleven seats", seatCount: 11, wantErr: ErrInvalidSeatCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 100, 2500)

			b, err := f.svc.Submit(context.Background(), SubmitInput{
				EventID:   f.eventID,
				UserID:    f.userID,
				SeatCount: tt.seatCount,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				// A rejected request never touches the ledger or the store.
				assert.Equal(t, 0, f.ledger.reserveCalls)
				assert.Equal(t, 0, f.store.count())
				assert.Equal(t, 100, f.ledger.available(f.eventID))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, b)
			assert.Equal(t, 100-tt.seatCount, f.ledger.available(f.eventID))
		})
	}
}

func TestSubmit_Unauthenticated(t *testing.T) {
	f := newFixture(t, 10, 2500)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    uuid.Nil,
		SeatCount: 2,
	})

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, f.ledger.reserveCalls)
}

func TestSubmit_EventNotFound(t *testing.T) {
	f := newFixture(t, 10, 2500)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   uuid.New(),
		UserID:    f.userID,
		SeatCount: 2,
	})

	require.ErrorIs(t, err, ErrEventNotFound)
	assert.Equal(t, 0, f.store.count())
}

func TestSubmit_Confirmed(t *testing.T) {
	f := newFixture(t, 5, 2500)

	b, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 2, b.SeatCount)
	assert.Equal(t, 5000, b.TotalCents)
	assert.Equal(t, 3, f.ledger.available(f.eventID))
	assert.Equal(t, 1, f.store.count())
}

func TestSubmit_SoldOut(t *testing.T) {
	f := newFixture(t, 2, 2500)

	b, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 3,
	})

	require.ErrorIs(t, err, ErrSoldOut)
	assert.Nil(t, b)
	// The failed attempt leaves the remaining seats untouched.
	assert.Equal(t, 2, f.ledger.available(f.eventID))
	assert.Equal(t, 0, f.store.count())
}

func TestSubmit_ExactlyDrainsInventory(t *testing.T) {
	f := newFixture(t, 3, 1000)

	b, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, f.ledger.available(f.eventID))
	assert.Equal(t, 3000, b.TotalCents)

	// Nothing is left for the next caller.
	_, err = f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    uuid.New(),
		SeatCount: 1,
	})
	require.ErrorIs(t, err, ErrSoldOut)
}

func TestSubmit_CompensatesOnRecordFailure(t *testing.T) {
	f := newFixture(t, 10, 2500)
	f.store.failWith = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 4,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSoldOut)
	// Reserved seats were given back before the error surfaced.
	assert.Equal(t, 10, f.ledger.available(f.eventID))
	assert.Equal(t, 1, f.ledger.restoreCalls)
	assert.Equal(t, 0, f.store.count())
}

func TestSubmit_IdempotentReplay(t *testing.T) {
	f := newFixture(t, 10, 2500)

	first, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:        f.eventID,
		UserID:         f.userID,
		SeatCount:      2,
		IdempotencyKey: "req-42",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, f.ledger.available(f.eventID))

	// The retry reserves again, hits the unique key, compensates and
	// returns the original booking.
	second, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:        f.eventID,
		UserID:         f.userID,
		SeatCount:      2,
		IdempotencyKey: "req-42",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalCents, second.TotalCents)

	// Only the first attempt's seats stay deducted.
	assert.Equal(t, 8, f.ledger.available(f.eventID))
	assert.Equal(t, 1, f.store.count())
}

func TestSubmit_RateLimited(t *testing.T) {
	f := newFixture(t, 10, 2500)
	f.svc.limiter = &fakeLimiter{allowed: false, retryAfter: 30 * time.Second}

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:      f.eventID,
		UserID:       f.userID,
		SeatCount:    1,
		RateLimitKey: "user:" + f.userID.String(),
	})

	var rl *RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30*time.Second, rl.RetryAfter)
	assert.Equal(t, 0, f.ledger.reserveCalls)
}

func TestSubmit_ConcurrentOverlap(t *testing.T) {
	// Two 3-seat requests race for 5 seats: exactly one can win.
	f := newFixture(t, 5, 2500)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Submit(context.Background(), SubmitInput{
				EventID:   f.eventID,
				UserID:    uuid.New(),
				SeatCount: 3,
			})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSoldOut):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 2, f.ledger.available(f.eventID))
}

func TestSubmit_ConcurrentNeverOversells(t *testing.T) {
	// 50 callers want 3 seats each out of 100: 33 can succeed and one
	// seat must remain.
	f := newFixture(t, 100, 1000)

	var wg sync.WaitGroup
	results := make([]error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Submit(context.Background(), SubmitInput{
				EventID:   f.eventID,
				UserID:    uuid.New(),
				SeatCount: 3,
			})
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range results {
		if err == nil {
			won++
		} else if !errors.Is(err, ErrSoldOut) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 33, won)
	assert.Equal(t, 1, f.ledger.available(f.eventID))
	assert.Equal(t, 33, f.store.count())
}

func TestGet_OwnershipHidesForeignBookings(t *testing.T) {
	f := newFixture(t, 10, 2500)

	b, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 1,
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), b.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	// A different user sees not-found, not forbidden.
	_, err = f.svc.Get(context.Background(), b.ID, uuid.New())
	require.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.Get(context.Background(), uuid.New(), f.userID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSubmit_PriceCapturedAtSubmission(t *testing.T) {
	f := newFixture(t, 10, 2500)

	// Organizer changes the price between page load and submission.
	f.events.events[f.eventID].PriceStart = 3000

	b, err := f.svc.Submit(context.Background(), SubmitInput{
		EventID:   f.eventID,
		UserID:    f.userID,
		SeatCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, 6000, b.TotalCents, fmt.Sprintf("charged at submission-time price, got %d", b.TotalCents))
}
