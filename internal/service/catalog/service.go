package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
	redisx "github.com/stagepass/stagepass/internal/redis"
	"github.com/stagepass/stagepass/internal/repository"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
	redisrepo "github.com/stagepass/stagepass/internal/repository/redis"
)

type Config struct {
	SummaryTTL      time.Duration
	AvailabilityTTL time.Duration
	CategoriesTTL   time.Duration
}

// Service is the advisory read path. Everything it serves may be stale
// by the time a client acts on it; the booking flow re-checks against
// the ledger and is the only enforcement point.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 5 * time.Second
	}

	if cfg.CategoriesTTL <= 0 {
		cfg.CategoriesTTL = 10 * time.Minute
	}

	return &Service{store: store, cache: cache, cfg: cfg}
}

// ListEvents lists events matching the filter. Listings are not cached:
// the filter space is wide and the per-event availability figure is
// allowed to lag anyway.
func (s *Service) ListEvents(ctx context.Context, f postgresrepo.EventFilter) ([]domain.EventSummary, error) {
	const op = "service.catalog.ListEvents"

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	out, err := s.store.Catalog().ListEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetEvent retrieves an event summary, cached briefly.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.EventSummary, error) {
	const op = "service.catalog.GetEvent"

	load := func(ctx context.Context) (*domain.EventSummary, error) {
		return s.store.Catalog().GetEvent(ctx, id)
	}

	var es *domain.EventSummary
	var err error

	if s.cache != nil {
		es, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyEventSummary(id), s.cfg.SummaryTTL, load)
	} else {
		es, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return es, nil
}

// Availability returns the remaining seats for one event, cached with
// a short TTL.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) Availability(ctx context.Context, eventID uuid.UUID) (int, error) {
	const op = "service.catalog.Availability"

	load := func(ctx context.Context) (int, error) {
		return s.store.Inventory().Availability(ctx, eventID)
	}

	var seats int
	var err error

	if s.cache != nil {
		seats, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyEventAvailability(eventID), s.cfg.AvailabilityTTL, load)
	} else {
		seats, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

// ListAvailability returns remaining seats per event for the listing
// views. Unknown IDs are absent from the result rather than an error.
// Reads the ledger directly: one round-trip beats N cache probes.
func (s *Service) ListAvailability(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	const op = "service.catalog.ListAvailability"

	out, err := s.store.Inventory().ListAvailability(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListCategories lists categories, cached generously since they barely
// ever change.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "service.catalog.ListCategories"

	load := func(ctx context.Context) ([]domain.Category, error) {
		return s.store.Catalog().ListCategories(ctx)
	}

	var out []domain.Category
	var err error

	if s.cache != nil {
		out, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyCategories(), s.cfg.CategoriesTTL, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
