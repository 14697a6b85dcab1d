package artists

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
	"github.com/stagepass/stagepass/internal/uow"
)

type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
	}
}

// List lists artists matching the filter.
func (s *Service) List(ctx context.Context, f postgresrepo.ArtistFilter) ([]domain.Artist, error) {
	const op = "service.artists.List"

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	out, err := s.store.Artists().List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Get retrieves one artist.
//
// Returns:
//   - error: ErrArtistNotFound if the artist does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	const op = "service.artists.Get"

	a, err := s.store.Artists().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrArtistNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

type SaveInput struct {
	UserID      uuid.UUID
	Name        string
	Profession  string
	Bio         string
	ImageURL    string
	CategoryIDs []uuid.UUID
}

// Save creates or updates the caller's artist profile together with
// its category links, in one transaction. An artist's ID is its
// owner's profile ID, so each user has at most one artist profile.
func (s *Service) Save(ctx context.Context, in SaveInput) (*domain.Artist, error) {
	const op = "service.artists.Save"

	a := &domain.Artist{
		ID:         in.UserID,
		Name:       in.Name,
		Profession: in.Profession,
		Bio:        in.Bio,
		ImageURL:   in.ImageURL,
	}

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Artists().With(tx).Upsert(ctx, a); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.Artists().With(tx).ReplaceCategories(ctx, a.ID, in.CategoryIDs); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

type AddPortfolioItemInput struct {
	ArtistID    uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	MediaURL    string
	MediaType   domain.MediaType
}

// AddPortfolioItem adds a portfolio item for the caller's own artist
// profile, enforcing the per-type media limits.
//
// Returns:
//   - error: ErrNotProfileOwner if the caller does not own the profile.
//   - error: ErrArtistNotFound if the artist profile does not exist.
//   - error: ErrPortfolioLimit if the media-type limit is reached.
//   - error: ErrInvalidMediaType for an unknown media type.
func (s *Service) AddPortfolioItem(ctx context.Context, in AddPortfolioItemInput) (*domain.PortfolioItem, error) {
	const op = "service.artists.AddPortfolioItem"

	if in.ArtistID != in.UserID {
		return nil, fmt.Errorf("%s: %w", op, ErrNotProfileOwner)
	}

	var limit int
	switch in.MediaType {
	case domain.MediaImage:
		limit = domain.MaxPortfolioImages
	case domain.MediaVideo:
		limit = domain.MaxPortfolioVideos
	case domain.MediaLink:
		limit = 0
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMediaType)
	}

	exists, err := s.store.Artists().Exists(ctx, in.ArtistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: %w", op, ErrArtistNotFound)
	}

	item := &domain.PortfolioItem{
		ID:          uuid.New(),
		ArtistID:    in.ArtistID,
		Title:       in.Title,
		Description: in.Description,
		MediaURL:    in.MediaURL,
		MediaType:   in.MediaType,
	}

	if err := s.store.Artists().AddPortfolioItem(ctx, item, limit); err != nil {
		if errors.Is(err, repository.ErrPortfolioLimit) {
			return nil, fmt.Errorf("%s: %w", op, ErrPortfolioLimit)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// ListPortfolio lists an artist's portfolio items.
func (s *Service) ListPortfolio(ctx context.Context, artistID uuid.UUID) ([]domain.PortfolioItem, error) {
	const op = "service.artists.ListPortfolio"

	out, err := s.store.Artists().ListPortfolio(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// MediaCounts returns the artist's portfolio usage per media type.
func (s *Service) MediaCounts(ctx context.Context, artistID uuid.UUID) (*domain.MediaCounts, error) {
	const op = "service.artists.MediaCounts"

	mc, err := s.store.Artists().MediaCounts(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mc, nil
}
