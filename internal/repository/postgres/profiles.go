package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ProfileRepo) With(db DB) *ProfileRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ProfileRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const profileColumns = `
	id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''),
	COALESCE(is_organizer, false), COALESCE(company_name, ''),
	COALESCE(company_description, ''), COALESCE(company_website, ''),
	password_hash, created_at, updated_at`

// Create inserts a new profile.
//
// Returns:
//   - error: repository.ErrConflict if the email is already taken.
func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	const op = "postgres.ProfileRepo.Create"

	db := r.handle()

	err := db.QueryRow(ctx,
		`INSERT INTO profiles(id, email, full_name, is_organizer, password_hash)
       	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING created_at, updated_at`,
		p.ID, p.Email, p.FullName, p.IsOrganizer, p.PasswordHash,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a profile by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the profile does not exist.
func (r *ProfileRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	const op = "postgres.ProfileRepo.Get"

	db := r.handle()

	p, err := scanProfile(db.QueryRow(ctx,
		`SELECT`+profileColumns+` FROM profiles WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return p, nil
}

// GetByEmail retrieves a profile by email, for login.
//
// Returns:
//   - error: repository.ErrNotFound if no profile has the email.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const op = "postgres.ProfileRepo.GetByEmail"

	db := r.handle()

	p, err := scanProfile(db.QueryRow(ctx,
		`SELECT`+profileColumns+` FROM profiles WHERE email = $1`, email,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return p, nil
}

// Update replaces the mutable profile fields.
//
// Returns:
//   - error: repository.ErrNotFound if the profile does not exist.
func (r *ProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	const op = "postgres.ProfileRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE profiles
        	SET full_name = $2, avatar_url = $3, is_organizer = $4,
            	company_name = $5, company_description = $6,
            	company_website = $7, updated_at = now()
      	 WHERE id = $1`,
		p.ID, p.FullName, p.AvatarURL, p.IsOrganizer,
		p.CompanyName, p.CompanyDescription, p.CompanyWebsite,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile

	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.AvatarURL,
		&p.IsOrganizer,
		&p.CompanyName,
		&p.CompanyDescription,
		&p.CompanyWebsite,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}
