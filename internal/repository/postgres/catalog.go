package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/domain"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// EventFilter narrows listings: a free-text term matched against
// title, venue and city, plus exact category and city filters.
type EventFilter struct {
	Search   string
	Category string
	City     string
	Limit    int
	Offset   int
}

const eventSummaryColumns = `
	e.id, e.title, COALESCE(e.description, ''), e.event_date, e.event_time,
	e.venue, e.city, e.price_start, e.price_end, e.capacity, e.available_seats,
	e.organizer_id, e.category_id, e.artist_id, COALESCE(e.image_url, ''),
	e.created_at, e.updated_at, COALESCE(c.name, '')`

// ListEvents lists events matching the filter, soonest first.
func (r *CatalogRepo) ListEvents(ctx context.Context, f EventFilter) ([]domain.EventSummary, error) {
	const op = "postgres.CatalogRepo.ListEvents"

	db := r.handle()

	query := `SELECT` + eventSummaryColumns + `
       	 FROM events e
       	 LEFT JOIN categories c ON c.id = e.category_id
      	 WHERE 1=1`

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		query += fmt.Sprintf(" AND (e.title ILIKE %s OR e.venue ILIKE %s OR e.city ILIKE %s)", p, p, p)
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND c.name = %s", arg(f.Category))
	}
	if f.City != "" {
		query += fmt.Sprintf(" AND e.city = %s", arg(f.City))
	}

	query += fmt.Sprintf(" ORDER BY e.event_date LIMIT %s OFFSET %s", arg(f.Limit), arg(f.Offset))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.EventSummary
	for rows.Next() {
		es, err := scanEventSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, *es)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetEvent retrieves a single event with its category name.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
func (r *CatalogRepo) GetEvent(ctx context.Context, id uuid.UUID) (*domain.EventSummary, error) {
	const op = "postgres.CatalogRepo.GetEvent"

	db := r.handle()

	es, err := scanEventSummary(db.QueryRow(ctx,
		`SELECT`+eventSummaryColumns+`
       	 FROM events e
       	 LEFT JOIN categories c ON c.id = e.category_id
      	 WHERE e.id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return es, nil
}

// ListCategories lists every category, alphabetically.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "postgres.CatalogRepo.ListCategories"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func scanEventSummary(row rowScanner) (*domain.EventSummary, error) {
	var es domain.EventSummary

	if err := row.Scan(
		&es.ID,
		&es.Title,
		&es.Description,
		&es.EventDate,
		&es.EventTime,
		&es.Venue,
		&es.City,
		&es.PriceStart,
		&es.PriceEnd,
		&es.Capacity,
		&es.AvailableSeats,
		&es.OrganizerID,
		&es.CategoryID,
		&es.ArtistID,
		&es.ImageURL,
		&es.CreatedAt,
		&es.UpdatedAt,
		&es.CategoryName,
	); err != nil {
		return nil, err
	}

	return &es, nil
}
