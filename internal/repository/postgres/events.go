package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
)

// EventRepo is the organizer-side write path for events. It never
// touches available_seats after creation; that column belongs to the
// inventory ledger.
type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts an event. Capacity doubles as the initial ledger value.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	const op = "postgres.EventRepo.Create"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO events(
			id, title, description, event_date, event_time, venue, city,
			price_start, price_end, capacity, available_seats,
			organizer_id, category_id, artist_id, image_url)
       	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10, $11, $12, $13, $14)
     	 RETURNING created_at, updated_at`,
		e.ID, e.Title, e.Description, e.EventDate, e.EventTime, e.Venue, e.City,
		e.PriceStart, e.PriceEnd, e.Capacity,
		e.OrganizerID, e.CategoryID, e.ArtistID, e.ImageURL,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	e.AvailableSeats = e.Capacity

	return nil
}

// UpdateDetails updates the descriptive fields of an event owned by
// the given organizer. Seat counts are out of reach here.
//
// Returns:
//   - error: repository.ErrNotFound if no event matches id+organizer.
func (r *EventRepo) UpdateDetails(
	ctx context.Context,
	id, organizerID uuid.UUID,
	title, description, venue, city string,
	eventDate time.Time,
	eventTime string,
	priceStart int,
	priceEnd *int,
	imageURL string,
) error {
	const op = "postgres.EventRepo.UpdateDetails"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events
        	SET title = $3, description = $4, venue = $5, city = $6,
            	event_date = $7, event_time = $8, price_start = $9,
            	price_end = $10, image_url = $11, updated_at = now()
      	 WHERE id = $1 AND organizer_id = $2`,
		id, organizerID, title, description, venue, city,
		eventDate, eventTime, priceStart, priceEnd, imageURL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// ListByOrganizer lists an organizer's events, soonest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]domain.Event, error) {
	const op = "postgres.EventRepo.ListByOrganizer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), event_date, event_time,
                venue, city, price_start, price_end, capacity, available_seats,
                organizer_id, category_id, artist_id, COALESCE(image_url, ''),
                created_at, updated_at
       	 FROM events
      	 WHERE organizer_id = $1
      	 ORDER BY event_date
      	 LIMIT $2 OFFSET $3`,
		organizerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.EventDate,
			&e.EventTime,
			&e.Venue,
			&e.City,
			&e.PriceStart,
			&e.PriceEnd,
			&e.Capacity,
			&e.AvailableSeats,
			&e.OrganizerID,
			&e.CategoryID,
			&e.ArtistID,
			&e.ImageURL,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
