package httpgin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
	"github.com/stagepass/stagepass/internal/service"
	"github.com/stagepass/stagepass/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedger struct {
	seats int
}

func (l *stubLedger) Availability(ctx context.Context, eventID uuid.UUID) (int, error) {
	return l.seats, nil
}

func (l *stubLedger) Reserve(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	if l.seats < seats {
		return 0, repository.ErrInsufficientSeats
	}
	l.seats -= seats
	return l.seats, nil
}

func (l *stubLedger) Restore(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	l.seats += seats
	return l.seats, nil
}

type stubBookingStore struct {
	created []*domain.Booking
}

func (s *stubBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	b.BookingDate = time.Now()
	b.CreatedAt = time.Now()
	s.created = append(s.created, b)
	return nil
}

func (s *stubBookingStore) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	for _, b := range s.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubBookingStore) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	for _, b := range s.created {
		if b.IdempotencyKey == key {
			return b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubBookingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.BookingWithEvent, error) {
	return nil, nil
}

type stubEventGetter struct {
	event *domain.EventSummary
}

func (g *stubEventGetter) GetEvent(ctx context.Context, id uuid.UUID) (*domain.EventSummary, error) {
	if g.event == nil || g.event.ID != id {
		return nil, repository.ErrNotFound
	}
	return g.event, nil
}

type stubRouterLimiter struct {
	allowed    bool
	retryAfter time.Duration
}

func (l *stubRouterLimiter) Allow(ctx context.Context, key string) (bool, int64, time.Duration, error) {
	return l.allowed, 0, l.retryAfter, nil
}

type routerFixture struct {
	router  *gin.Engine
	tokens  *auth.TokenManager
	ledger  *stubLedger
	store   *stubBookingStore
	eventID uuid.UUID
	userID  uuid.UUID
}

func newRouterFixture(t *testing.T, seats int, limiter booking.Limiter) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eventID := uuid.New()
	ledger := &stubLedger{seats: seats}
	store := &stubBookingStore{}
	events := &stubEventGetter{event: &domain.EventSummary{Event: domain.Event{
		ID:         eventID,
		Title:      "Late Set",
		PriceStart: 2500,
		Capacity:   seats,
	}}}

	logger := slog.Default()
	tokens := auth.NewTokenManager("router-test-secret", time.Hour)

	svcs := &service.Services{
		Booking: booking.New(ledger, store, events, nil, nil, limiter, nil, logger, booking.Config{}),
	}

	return &routerFixture{
		router:  NewRouter(svcs, nil, tokens, nil, logger),
		tokens:  tokens,
		ledger:  ledger,
		store:   store,
		eventID: eventID,
		userID:  uuid.New(),
	}
}

func (f *routerFixture) createBooking(t *testing.T, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost,
		"/events/"+f.eventID.String()+"/bookings",
		strings.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCreateBooking_RequiresAuth(t *testing.T) {
	f := newRouterFixture(t, 10, nil)

	w := f.createBooking(t, "", `{"seat_count": 2}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10, f.ledger.seats)
}

func TestCreateBooking_Success(t *testing.T) {
	f := newRouterFixture(t, 10, nil)
	token, err := f.tokens.Issue(f.userID, false)
	require.NoError(t, err)

	w := f.createBooking(t, token, `{"seat_count": 2}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.SeatCount)
	assert.Equal(t, 5000, resp.TotalCents)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 8, f.ledger.seats)
}

func TestCreateBooking_InvalidSeatCount(t *testing.T) {
	f := newRouterFixture(t, 10, nil)
	token, err := f.tokens.Issue(f.userID, false)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
	}{
		{name: "zero", body: `{"seat_count": 0}`},
		{name: "eleven", body: `{"seat_count": 11}`},
		{name: "missing", body: `{}`},
		{name: "not json", body: `seat_count=2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.createBooking(t, token, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 10, f.ledger.seats)
		})
	}
}

func TestCreateBooking_SoldOut(t *testing.T) {
	f := newRouterFixture(t, 2, nil)
	token, err := f.tokens.Issue(f.userID, false)
	require.NoError(t, err)

	w := f.createBooking(t, token, `{"seat_count": 3}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, f.ledger.seats)
	assert.Empty(t, f.store.created)
}

func TestCreateBooking_EventNotFound(t *testing.T) {
	f := newRouterFixture(t, 10, nil)
	token, err := f.tokens.Issue(f.userID, false)
	require.NoError(t, err)

	req := httptest.NewRequest(
		http.MethodPost,
		"/events/"+uuid.New().String()+"/bookings",
		strings.NewReader(`{"seat_count": 1}`),
	)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBooking_RateLimited(t *testing.T) {
	f := newRouterFixture(t, 10, &stubRouterLimiter{allowed: false, retryAfter: 42 * time.Second})
	token, err := f.tokens.Issue(f.userID, false)
	require.NoError(t, err)

	w := f.createBooking(t, token, `{"seat_count": 1}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 10, f.ledger.seats)
}

func TestHealthz(t *testing.T) {
	f := newRouterFixture(t, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
