package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	IsOrganizer bool `json:"org"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the bearer tokens the API uses as
// its user session.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(userID uuid.UUID, isOrganizer bool) (string, error) {
	const op = "auth.TokenManager.Issue"

	now := time.Now()
	claims := Claims{
		IsOrganizer: isOrganizer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Verify parses the token and returns the user ID and organizer flag.
//
// Returns:
//   - error: ErrExpiredToken if the token is past its expiry.
//   - error: ErrInvalidToken for any other parse or claims failure.
func (m *TokenManager) Verify(token string) (uuid.UUID, bool, error) {
	const op = "auth.TokenManager.Verify"

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, false, fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return uuid.Nil, false, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return userID, claims.IsOrganizer, nil
}
