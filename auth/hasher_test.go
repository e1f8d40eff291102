package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	h := NewPasswordHasher(10)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	ok, err := h.Verify("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(10)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(10)

	for _, hash := range []string{"", "plaintext", "$2a$10$short"} {
		ok, err := h.Verify("secret123", hash)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrCredentialFormat, "hash %q", hash)
	}
}

func TestHashTooLong(t *testing.T) {
	h := NewPasswordHasher(10)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	assert.Equal(t, 10, NewPasswordHasher(1).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}
