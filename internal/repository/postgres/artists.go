package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
)

type ArtistRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ArtistRepo) With(db DB) *ArtistRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ArtistRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

type ArtistFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// List lists artists matching the filter, with their category names
// aggregated per row.
func (r *ArtistRepo) List(ctx context.Context, f ArtistFilter) ([]domain.Artist, error) {
	const op = "postgres.ArtistRepo.List"

	db := r.handle()

	query := `SELECT a.id, a.name, a.profession, COALESCE(a.bio, ''),
                 COALESCE(a.rating, 0), COALESCE(a.image_url, ''),
                 COALESCE(array_agg(c.name) FILTER (WHERE c.name IS NOT NULL), '{}'),
                 a.created_at, a.updated_at
       	 FROM artists a
       	 LEFT JOIN artist_categories ac ON ac.artist_id = a.id
       	 LEFT JOIN categories c ON c.id = ac.category_id
      	 WHERE 1=1`

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		query += fmt.Sprintf(" AND (a.name ILIKE %s OR a.profession ILIKE %s OR a.bio ILIKE %s)", p, p, p)
	}
	if f.Category != "" {
		query += fmt.Sprintf(
			` AND a.id IN (
				SELECT ac2.artist_id FROM artist_categories ac2
				JOIN categories c2 ON c2.id = ac2.category_id
				WHERE c2.name = %s)`, arg(f.Category))
	}

	query += fmt.Sprintf(" GROUP BY a.id ORDER BY a.name LIMIT %s OFFSET %s", arg(f.Limit), arg(f.Offset))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Get retrieves a single artist with category names.
//
// Returns:
//   - error: repository.ErrNotFound if the artist does not exist.
func (r *ArtistRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	const op = "postgres.ArtistRepo.Get"

	db := r.handle()

	a, err := scanArtist(db.QueryRow(ctx,
		`SELECT a.id, a.name, a.profession, COALESCE(a.bio, ''),
                COALESCE(a.rating, 0), COALESCE(a.image_url, ''),
                COALESCE(array_agg(c.name) FILTER (WHERE c.name IS NOT NULL), '{}'),
                a.created_at, a.updated_at
       	 FROM artists a
       	 LEFT JOIN artist_categories ac ON ac.artist_id = a.id
       	 LEFT JOIN categories c ON c.id = ac.category_id
      	 WHERE a.id = $1
      	 GROUP BY a.id`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return a, nil
}

// Exists reports whether an artist profile already exists for the ID.
// An artist's ID equals its owner's profile ID, one profile per user.
func (r *ArtistRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "postgres.ArtistRepo.Exists"

	db := r.handle()

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM artists WHERE id = $1)`,
		id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return exists, nil
}

// Upsert creates or updates an artist profile.
func (r *ArtistRepo) Upsert(ctx context.Context, a *domain.Artist) error {
	const op = "postgres.ArtistRepo.Upsert"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO artists(id, name, profession, bio, rating, image_url)
       	 VALUES ($1, $2, $3, $4, $5, $6)
     	 ON CONFLICT (id) DO UPDATE
        	SET name = EXCLUDED.name, profession = EXCLUDED.profession,
            	bio = EXCLUDED.bio, image_url = EXCLUDED.image_url,
            	updated_at = now()
     	 RETURNING created_at, updated_at`,
		a.ID, a.Name, a.Profession, a.Bio, a.Rating, a.ImageURL,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// ReplaceCategories swaps the artist's category links for the given
// set. Meant to run inside the same transaction as Upsert.
func (r *ArtistRepo) ReplaceCategories(ctx context.Context, artistID uuid.UUID, categoryIDs []uuid.UUID) error {
	const op = "postgres.ArtistRepo.ReplaceCategories"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`DELETE FROM artist_categories WHERE artist_id = $1`,
		artistID,
	); err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, cid := range categoryIDs {
		batch.Queue(
			`INSERT INTO artist_categories(id, artist_id, category_id)
         	 VALUES ($1, $2, $3)
       		 ON CONFLICT DO NOTHING`,
			uuid.New(), artistID, cid,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// AddPortfolioItem inserts a portfolio item, enforcing the per-type
// media limit in the same statement so concurrent uploads cannot
// overshoot it.
//
// Returns:
//   - error: repository.ErrPortfolioLimit if the artist is at the
//     limit for the item's media type.
func (r *ArtistRepo) AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem, limit int) error {
	const op = "postgres.ArtistRepo.AddPortfolioItem"

	db := r.handle()

	// Links are not counted against a limit.
	if item.MediaType == domain.MediaLink {
		err := db.QueryRow(ctx,
			`INSERT INTO portfolio_items(id, artist_id, title, description, media_url, media_type)
           	 VALUES ($1, $2, $3, $4, $5, $6)
         	 RETURNING created_at`,
			item.ID, item.ArtistID, item.Title, item.Description, item.MediaURL, string(item.MediaType),
		).Scan(&item.CreatedAt)
		if err != nil {
			return fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		return nil
	}

	err := db.QueryRow(ctx,
		`INSERT INTO portfolio_items(id, artist_id, title, description, media_url, media_type)
       	 SELECT $1, $2, $3, $4, $5, $6
      	 WHERE (SELECT COUNT(*) FROM portfolio_items
              	 WHERE artist_id = $2 AND media_type = $6) < $7
     	 RETURNING created_at`,
		item.ID, item.ArtistID, item.Title, item.Description, item.MediaURL, string(item.MediaType), limit,
	).Scan(&item.CreatedAt)
	if err != nil {
		if errors.Is(translateDBErr(err), repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, repository.ErrPortfolioLimit)
		}
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// ListPortfolio lists an artist's portfolio items, newest first.
func (r *ArtistRepo) ListPortfolio(ctx context.Context, artistID uuid.UUID) ([]domain.PortfolioItem, error) {
	const op = "postgres.ArtistRepo.ListPortfolio"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, artist_id, title, description, media_url, media_type, created_at
       	 FROM portfolio_items
      	 WHERE artist_id = $1
      	 ORDER BY created_at DESC`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.PortfolioItem
	for rows.Next() {
		var it domain.PortfolioItem
		var mt string

		if err := rows.Scan(&it.ID, &it.ArtistID, &it.Title, &it.Description, &it.MediaURL, &mt, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}

		it.MediaType = domain.MediaType(mt)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// MediaCounts returns the number of portfolio images and videos the
// artist has uploaded.
func (r *ArtistRepo) MediaCounts(ctx context.Context, artistID uuid.UUID) (*domain.MediaCounts, error) {
	const op = "postgres.ArtistRepo.MediaCounts"

	db := r.handle()

	var mc domain.MediaCounts
	err := db.QueryRow(ctx,
		`SELECT
        	COALESCE(SUM(CASE WHEN media_type = 'image' THEN 1 ELSE 0 END), 0),
        	COALESCE(SUM(CASE WHEN media_type = 'video' THEN 1 ELSE 0 END), 0)
       	 FROM portfolio_items
      	 WHERE artist_id = $1`,
		artistID,
	).Scan(&mc.Images, &mc.Videos)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &mc, nil
}

func scanArtist(row rowScanner) (*domain.Artist, error) {
	var a domain.Artist

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Profession,
		&a.Bio,
		&a.Rating,
		&a.ImageURL,
		&a.CategoryNames,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}
