package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/repository"
)

// InventoryRepo is the seat ledger. available_seats is mutated only
// here, and only through single conditional statements, so two racing
// bookers can never both win the same seats.
type InventoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *InventoryRepo) With(db DB) *InventoryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *InventoryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Availability returns the current available seat count for an event.
//
// Returns:
//   - int: remaining seats.
//   - error: repository.ErrNotFound if the event does not exist.
func (r *InventoryRepo) Availability(ctx context.Context, eventID uuid.UUID) (int, error) {
	const op = "postgres.InventoryRepo.Availability"

	db := r.handle()

	var seats int
	err := db.QueryRow(ctx,
		`SELECT available_seats FROM events WHERE id = $1`,
		eventID,
	).Scan(&seats)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return seats, nil
}

// Reserve atomically decrements the ledger by seats if, and only if,
// at least that many remain. The predicate and the decrement are one
// statement, never a read followed by a write.
//
// Returns:
//   - int: the new available count after the decrement.
//   - error: repository.ErrInsufficientSeats if fewer than seats remain.
//   - error: repository.ErrNotFound if the event does not exist.
func (r *InventoryRepo) Reserve(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	const op = "postgres.InventoryRepo.Reserve"

	if seats <= 0 {
		return 0, fmt.Errorf("%s: seats must be positive", op)
	}

	db := r.handle()

	var remaining int
	err := db.QueryRow(ctx,
		`UPDATE events
        	SET available_seats = available_seats - $2, updated_at = now()
      	 WHERE id = $1 AND available_seats >= $2
      	 RETURNING available_seats`,
		eventID, seats,
	).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	// No row matched: either the event is gone or the seats ran out.
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`,
		eventID,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if !exists {
		return 0, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return 0, fmt.Errorf("%s: %w", op, repository.ErrInsufficientSeats)
}

// Restore returns previously reserved seats to the ledger. It is the
// compensating half of Reserve, used when recording a booking fails
// after the decrement committed. The count is capped at capacity.
//
// Returns:
//   - int: the new available count after the increment.
//   - error: repository.ErrNotFound if the event does not exist.
func (r *InventoryRepo) Restore(ctx context.Context, eventID uuid.UUID, seats int) (int, error) {
	const op = "postgres.InventoryRepo.Restore"

	if seats <= 0 {
		return 0, fmt.Errorf("%s: seats must be positive", op)
	}

	db := r.handle()

	var remaining int
	err := db.QueryRow(ctx,
		`UPDATE events
        	SET available_seats = LEAST(available_seats + $2, capacity), updated_at = now()
      	 WHERE id = $1
      	 RETURNING available_seats`,
		eventID, seats,
	).Scan(&remaining)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return remaining, nil
}

// ListAvailability returns remaining seats for each requested event.
// Events that do not exist are simply absent from the result.
func (r *InventoryRepo) ListAvailability(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	const op = "postgres.InventoryRepo.ListAvailability"

	out := make(map[uuid.UUID]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, available_seats FROM events WHERE id = ANY($1)`,
		eventIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var seats int
		if err := rows.Scan(&id, &seats); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out[id] = seats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
