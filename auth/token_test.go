package auth

import (
	"testing"
	"time"

	"blog-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, 24*time.Hour, "blog-api")

	token, expiresAt, err := m.Issue(42, models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id.UserID)
	assert.True(t, id.IsAdmin())
}

func TestVerifyMissing(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "blog-api")

	_, err := m.Verify("  ")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("another-secret-that-is-long-enough-xx", time.Hour, "blog-api")
	verifier := NewTokenManager(testSecret, time.Hour, "blog-api")

	token, _, err := issuer.Issue(1, models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "blog-api")

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpired(t *testing.T) {
	m := NewTokenManager(testSecret, 24*time.Hour, "blog-api")
	m.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, _, err := m.Issue(7, models.RoleUser)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyExpiredWithBadSignature(t *testing.T) {
	issuer := NewTokenManager("another-secret-that-is-long-enough-xx", 24*time.Hour, "blog-api")
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	verifier := NewTokenManager(testSecret, 24*time.Hour, "blog-api")

	token, _, err := issuer.Issue(7, models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "blog-api")

	claims := &Claims{
		UserID: 1,
		Role:   string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "blog-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyWrongIssuer(t *testing.T) {
	issuer := NewTokenManager(testSecret, time.Hour, "someone-else")
	verifier := NewTokenManager(testSecret, time.Hour, "blog-api")

	token, _, err := issuer.Issue(1, models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
