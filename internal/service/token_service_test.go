package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygames/internal/apperr"
	"mygames/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret-key", "My Games API", 2*time.Hour)

	signed, err := svc.Issue(&domain.User{ID: 7, Username: "alice@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := svc.VerifySubject(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-key", "My Games API", time.Hour)
	verifier := NewTokenService("other-key", "My Games API", time.Hour)

	signed, err := issuer.Issue(&domain.User{ID: 1, Username: "alice@example.com"})
	require.NoError(t, err)

	_, err = verifier.VerifySubject(signed)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidToken))
}

func TestTokenWrongIssuerRejected(t *testing.T) {
	issuer := NewTokenService("secret-key", "Other API", time.Hour)
	verifier := NewTokenService("secret-key", "My Games API", time.Hour)

	signed, err := issuer.Issue(&domain.User{ID: 1, Username: "alice@example.com"})
	require.NoError(t, err)

	_, err = verifier.VerifySubject(signed)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidToken))
}

func TestTokenExpiredRejected(t *testing.T) {
	svc := NewTokenService("secret-key", "My Games API", -time.Hour)

	signed, err := svc.Issue(&domain.User{ID: 1, Username: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.VerifySubject(signed)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidToken))
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := NewTokenService("secret-key", "My Games API", time.Hour)

	_, err := svc.VerifySubject("not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidToken))
}
