package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/repository"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
)

const minPasswordLen = 8

type Service struct {
	store  *postgresrepo.Store
	tokens *auth.TokenManager
}

func New(store *postgresrepo.Store, tokens *auth.TokenManager) *Service {
	return &Service{store: store, tokens: tokens}
}

type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	IsOrganizer bool
}

// Register creates a profile and returns it with a session token.
//
// Returns:
//   - error: ErrWeakPassword if the password is below the minimum length.
//   - error: ErrEmailTaken if the email is already registered.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Profile, string, error) {
	const op = "service.accounts.Register"

	if len(in.Password) < minPasswordLen {
		return nil, "", fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	p := &domain.Profile{
		ID:           uuid.New(),
		Email:        in.Email,
		FullName:     in.FullName,
		IsOrganizer:  in.IsOrganizer,
		PasswordHash: hash,
	}

	if err := s.store.Profiles().Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Issue(p.ID, p.IsOrganizer)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return p, token, nil
}

// Login verifies credentials and returns the profile with a session
// token. Lookup and verification failures collapse into one error so
// the response does not leak which emails exist.
//
// Returns:
//   - error: ErrInvalidCredentials on unknown email or wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	const op = "service.accounts.Login"

	p, err := s.store.Profiles().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := auth.VerifyPassword(password, p.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(p.ID, p.IsOrganizer)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return p, token, nil
}

// Get retrieves a profile by ID.
//
// Returns:
//   - error: ErrProfileNotFound if the profile does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	const op = "service.accounts.Get"

	p, err := s.store.Profiles().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

type UpdateInput struct {
	ID                 uuid.UUID
	FullName           string
	AvatarURL          string
	IsOrganizer        bool
	CompanyName        string
	CompanyDescription string
	CompanyWebsite     string
}

// Update replaces the mutable profile fields.
//
// Returns:
//   - error: ErrProfileNotFound if the profile does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	const op = "service.accounts.Update"

	p := &domain.Profile{
		ID:                 in.ID,
		FullName:           in.FullName,
		AvatarURL:          in.AvatarURL,
		IsOrganizer:        in.IsOrganizer,
		CompanyName:        in.CompanyName,
		CompanyDescription: in.CompanyDescription,
		CompanyWebsite:     in.CompanyWebsite,
	}

	if err := s.store.Profiles().Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
