package organizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
)

type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

type CreateEventInput struct {
	OrganizerID uuid.UUID
	IsOrganizer bool
	Title       string
	Description string
	EventDate   time.Time
	EventTime   string
	Venue       string
	City        string
	PriceStart  int
	PriceEnd    *int
	Capacity    int
	CategoryID  *uuid.UUID
	ArtistID    *uuid.UUID
	ImageURL    string
}

// CreateEvent creates an event. Capacity becomes the initial ledger
// value; after this the seat count is the inventory ledger's alone.
//
// Returns:
//   - error: ErrNotOrganizer if the caller is not an organizer profile.
//   - error: ErrInvalidEvent for bad capacity, prices, or dates.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*domain.Event, error) {
	const op = "service.organizer.CreateEvent"

	if !in.IsOrganizer {
		return nil, fmt.Errorf("%s: %w", op, ErrNotOrganizer)
	}

	if in.Title == "" || in.Venue == "" || in.City == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEvent)
	}

	if in.Capacity <= 0 {
		return nil, fmt.Errorf("%s: capacity must be positive: %w", op, ErrInvalidEvent)
	}

	if in.PriceStart < 0 || (in.PriceEnd != nil && *in.PriceEnd < in.PriceStart) {
		return nil, fmt.Errorf("%s: bad price range: %w", op, ErrInvalidEvent)
	}

	if in.EventDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("%s: event date in the past: %w", op, ErrInvalidEvent)
	}

	e := &domain.Event{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		EventTime:   in.EventTime,
		Venue:       in.Venue,
		City:        in.City,
		PriceStart:  in.PriceStart,
		PriceEnd:    in.PriceEnd,
		Capacity:    in.Capacity,
		OrganizerID: in.OrganizerID,
		CategoryID:  in.CategoryID,
		ArtistID:    in.ArtistID,
		ImageURL:    in.ImageURL,
	}

	if err := s.store.Events().Create(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

type UpdateEventInput struct {
	EventID     uuid.UUID
	OrganizerID uuid.UUID
	Title       string
	Description string
	EventDate   time.Time
	EventTime   string
	Venue       string
	City        string
	PriceStart  int
	PriceEnd    *int
	ImageURL    string
}

// UpdateEvent updates an event's descriptive fields. Capacity and
// available seats are deliberately not updatable here.
//
// Returns:
//   - error: ErrEventNotFound if the event does not exist or is not
//     owned by the caller.
func (s *Service) UpdateEvent(ctx context.Context, in UpdateEventInput) error {
	const op = "service.organizer.UpdateEvent"

	if in.Title == "" || in.Venue == "" || in.City == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidEvent)
	}

	if in.PriceStart < 0 || (in.PriceEnd != nil && *in.PriceEnd < in.PriceStart) {
		return fmt.Errorf("%s: bad price range: %w", op, ErrInvalidEvent)
	}

	err := s.store.Events().UpdateDetails(
		ctx,
		in.EventID, in.OrganizerID,
		in.Title, in.Description, in.Venue, in.City,
		in.EventDate, in.EventTime,
		in.PriceStart, in.PriceEnd, in.ImageURL,
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListEvents lists the organizer's own events.
func (s *Service) ListEvents(ctx context.Context, organizerID uuid.UUID, limit, offset int) ([]domain.Event, error) {
	const op = "service.organizer.ListEvents"

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	out, err := s.store.Events().ListByOrganizer(ctx, organizerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
