package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NonDeterministic(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "bcrypt must salt each hash")
	assert.True(t, VerifyPassword(h1, "secret"))
	assert.True(t, VerifyPassword(h2, "secret"))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, VerifyPassword(h, "not-the-secret"))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	// A garbage hash must read as a mismatch, not a panic or error.
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret"))
	assert.False(t, VerifyPassword("", "secret"))
}
