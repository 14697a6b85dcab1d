package repository

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrPortfolioLimit    = errors.New("portfolio limit reached")
)
