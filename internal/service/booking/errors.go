package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSeatCount = errors.New("seat count out of range")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrEventNotFound    = errors.New("event not found")
	ErrSoldOut          = errors.New("not enough seats available")
	ErrBookingNotFound  = errors.New("booking not found")
)

// RateLimitedError tells the caller how long to back off.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}
