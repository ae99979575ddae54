package repository

import (
	"context"
	"time"

	"mygames/internal/domain"
)

// PasswordResetTokenRepository persists reset tokens with the one-live-token
// invariant: Replace removes any prior token for the user before inserting.
type PasswordResetTokenRepository interface {
	Init(ctx context.Context) error
	Replace(ctx context.Context, token *domain.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	// Consume stores the new password hash on the token's user and deletes
	// the token, atomically.
	Consume(ctx context.Context, tokenID, userID int64, passwordHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
