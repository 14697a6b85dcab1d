package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := tm.Issue(userID, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, isOrganizer, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.True(t, isOrganizer)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(uuid.New(), false)
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	tm.ttl = -time.Minute

	token, err := tm.Issue(uuid.New(), false)
	require.NoError(t, err)

	_, _, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, _, err := tm.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
