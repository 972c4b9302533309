package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	token, expiresAt, err := issuer.Issue("u1", "Anna", "anna@sandgrund.se", "staff")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Anna", claims.Name)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue("u1", "Anna", "anna@sandgrund.se", "staff")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssuer_RejectsWrongSecretAndAlgorithm(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer(strings.Repeat("x", 32), time.Hour)
		token, _, err := other.Issue("u1", "Anna", "a@b.se", "staff")
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := &Claims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
			ID:        "id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse", 4)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hashed, "correct horse"))
	assert.False(t, CheckPassword(hashed, "wrong horse"))
}

func TestNewResetToken(t *testing.T) {
	rt, err := NewResetToken(10 * time.Minute)
	require.NoError(t, err)

	assert.Len(t, rt.Token, 64)
	assert.Equal(t, HashResetToken(rt.Token), rt.Hash)
	assert.NotEqual(t, rt.Token, rt.Hash)
	assert.True(t, rt.ExpiresAt.After(time.Now()))
}

func TestMemoryDenylist(t *testing.T) {
	d := NewMemoryDenylist()
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, d.Revoke(ctx, "stale", time.Now().Add(-time.Second)))

	revoked, err := d.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", Actor(ctx))

	ctx = WithClaims(ctx, &Claims{Name: "Anna"})
	claims, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "Anna", claims.Name)
	assert.Equal(t, "Anna", Actor(ctx))
}
