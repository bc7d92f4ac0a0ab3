package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, VerifyPassword("hunter2", hash))
	assert.False(t, VerifyPassword("hunter3", hash))
}

func TestHashPassword_LongInputTruncated(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	// Only the first 72 bytes are significant.
	assert.True(t, VerifyPassword(long, hash))
	assert.True(t, VerifyPassword(strings.Repeat("a", 72), hash))
	assert.False(t, VerifyPassword(strings.Repeat("a", 71), hash))
}
