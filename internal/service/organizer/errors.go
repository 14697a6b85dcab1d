package organizer

import "errors"

var (
	ErrNotOrganizer  = errors.New("profile is not an organizer")
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)
