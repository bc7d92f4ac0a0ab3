package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	token, err := tm.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestVerify_ExpiredToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", -time.Minute)
	require.NoError(t, err)

	token, err := tm.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", "HS256", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b", "HS256", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	_, err = tm.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_UnsupportedAlgorithm(t *testing.T) {
	_, err := NewTokenManager("test-secret", "RS256", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenManager("test-secret", "bogus", time.Hour)
	assert.Error(t, err)
}
