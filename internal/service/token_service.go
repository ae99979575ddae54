package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mygames/internal/apperr"
	"mygames/internal/domain"
)

// TokenService issues and verifies the stateless bearer tokens used for
// authentication. Validity is signature plus expiry; there is no revocation,
// a leaked token stays valid until it expires.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	VerifySubject(token string) (string, error)
}

type tokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenService(secret, issuer string, ttl time.Duration) TokenService {
	return &tokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token carrying the issuer, the username as subject and the
// numeric user id as a claim.
func (s *tokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user.Username,
		"id":  user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifySubject validates signature, issuer and expiry and returns the
// subject. Every failure mode collapses into the single invalid-token kind.
func (s *tokenService) VerifySubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", apperr.Wrap(apperr.InvalidToken, "invalid or expired token", err)
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperr.Wrap(apperr.InvalidToken, "token subject missing", err)
	}
	return subject, nil
}
