package redisx

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "stagepass:v1"

func KeyEventSummary(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:summary", ns, eventID)
}

func KeyEventAvailability(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:availability", ns, eventID)
}

func KeyCategories() string {
	return ns + ":categories"
}

// RateLimitPrefix names the limiter's key family for a scope; the
// limiter appends the caller's own suffix.
func RateLimitPrefix(scope string) string {
	return fmt.Sprintf("%s:rl:%s", ns, scope)
}

func ChannelAvailabilityChanged() string {
	return ns + ":availability:changed"
}
