package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/safar/shopfront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager(config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "shopfront-test",
		TokenTTL:  time.Hour,
	})
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager()

	token, err := m.Issue("gary", "ROLE_USER")
	require.NoError(t, err)

	p, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "gary", p.Username)
	assert.Equal(t, "ROLE_USER", p.Role)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue("gary", "ROLE_USER")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokenManager(config.AuthConfig{JWTSecret: "other-secret", Issuer: "shopfront-test", TokenTTL: time.Hour})
	token, err := other.Issue("gary", "ROLE_USER")
	require.NoError(t, err)

	_, err = newTestManager().Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "gary",
		Issuer:    "shopfront-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestManager().Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{Username: "jenny"})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "jenny", p.Username)
}
