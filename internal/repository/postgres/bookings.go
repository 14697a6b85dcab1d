package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/domain"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a booking row.
//
// Returns:
//   - error: repository.ErrConflict if the idempotency key was already
//     used (the unique index collapses duplicate retries).
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	var idemKey *string
	if b.IdempotencyKey != "" {
		idemKey = &b.IdempotencyKey
	}

	err := db.QueryRow(ctx,
		`INSERT INTO bookings(id, event_id, user_id, seat_count, total_cents, status, idempotency_key, booking_date)
       	 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
     	 RETURNING booking_date, created_at`,
		b.ID, b.EventID, b.UserID, b.SeatCount, b.TotalCents, string(b.Status), idemKey,
	).Scan(&b.BookingDate, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the booking does not exist.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT id, event_id, user_id, seat_count, total_cents, status,
                COALESCE(idempotency_key, ''), booking_date, created_at
       	 FROM bookings WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return b, nil
}

// GetByIdempotencyKey retrieves the booking created for a prior retry
// of the same logical request, if any.
//
// Returns:
//   - error: repository.ErrNotFound if no booking carries the key.
func (r *BookingRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.GetByIdempotencyKey"

	db := r.handle()

	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT id, event_id, user_id, seat_count, total_cents, status,
                COALESCE(idempotency_key, ''), booking_date, created_at
       	 FROM bookings WHERE idempotency_key = $1`,
		key,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return b, nil
}

// ListByUser lists a user's bookings, newest first, joined with the
// event fields the bookings page renders.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.BookingWithEvent, error) {
	const op = "postgres.BookingRepo.ListByUser"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT b.id, b.event_id, b.user_id, b.seat_count, b.total_cents, b.status,
                COALESCE(b.idempotency_key, ''), b.booking_date, b.created_at,
                e.title, e.event_date, e.venue, e.city
       	 FROM bookings b
       	 JOIN events e ON e.id = b.event_id
      	 WHERE b.user_id = $1
      	 ORDER BY b.created_at DESC
      	 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.BookingWithEvent
	for rows.Next() {
		var bw domain.BookingWithEvent
		var status string

		if err := rows.Scan(
			&bw.ID,
			&bw.EventID,
			&bw.UserID,
			&bw.SeatCount,
			&bw.TotalCents,
			&status,
			&bw.IdempotencyKey,
			&bw.BookingDate,
			&bw.CreatedAt,
			&bw.EventTitle,
			&bw.EventDate,
			&bw.Venue,
			&bw.City,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}

		bw.Status = domain.BookingStatus(status)
		out = append(out, bw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string

	if err := row.Scan(
		&b.ID,
		&b.EventID,
		&b.UserID,
		&b.SeatCount,
		&b.TotalCents,
		&status,
		&b.IdempotencyKey,
		&b.BookingDate,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)

	return &b, nil
}
