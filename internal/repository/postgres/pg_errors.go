package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stagepass/stagepass/internal/repository"
)

// IsRetryable reports whether the statement failed with a transient
// serialization or deadlock error and may be retried as-is.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}

	return false
}

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		switch pge.Code {
		// unique_violation
		case "23505":
			return repository.ErrConflict
		// check_violation: the seats >= 0 constraint is the storage-level
		// backstop for the ledger, a violation means insufficient inventory
		case "23514":
			return repository.ErrInsufficientSeats
		}
	}

	return err
}
