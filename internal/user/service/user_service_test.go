package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/auth"
	"github.com/yemyy27/perfume-store-platform/internal/user/store"
)

func newTestService(t *testing.T) (*UserService, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	return NewUserService(store.NewMemoryStore(), tm, zap.NewNop()), tm
}

func TestRegister_HashesPassword(t *testing.T) {
	sut, _ := newTestService(t)

	user, err := sut.Register(context.Background(), "alice@example.com", "hunter2", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	sut, _ := newTestService(t)

	_, err := sut.Register(context.Background(), "alice@example.com", "hunter2", "Alice")
	require.NoError(t, err)

	_, err = sut.Register(context.Background(), "alice@example.com", "other", "Alice Again")
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	sut, tm := newTestService(t)

	_, err := sut.Register(context.Background(), "alice@example.com", "hunter2", "Alice")
	require.NoError(t, err)

	token, err := sut.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	principal, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", principal)
}

func TestLogin_WrongPassword(t *testing.T) {
	sut, _ := newTestService(t)

	_, err := sut.Register(context.Background(), "alice@example.com", "hunter2", "Alice")
	require.NoError(t, err)

	_, err = sut.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	sut, _ := newTestService(t)

	_, err := sut.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
