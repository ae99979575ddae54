package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

const createResetTokensTable = `
CREATE TABLE IF NOT EXISTS password_reset_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	token TEXT NOT NULL UNIQUE,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	expiry_date DATETIME NOT NULL
);
`

type PasswordResetTokenRepository struct {
	db *sqlx.DB
}

func NewPasswordResetTokenRepository(db *sqlx.DB) repository.PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

func (r *PasswordResetTokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createResetTokensTable); err != nil {
		return fmt.Errorf("create password_reset_tokens table: %w", err)
	}
	return nil
}

// Replace removes any live token for the user and inserts the new one in a
// single transaction, keeping the one-live-token invariant.
func (r *PasswordResetTokenRepository) Replace(ctx context.Context, token *domain.PasswordResetToken) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE user_id = ?`, token.UserID); err != nil {
			return fmt.Errorf("delete prior token: %w", err)
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO password_reset_tokens (token, user_id, expiry_date) VALUES (?, ?, ?)`,
			token.Token, token.UserID, token.ExpiryDate)
		if err != nil {
			return fmt.Errorf("insert token: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("token last insert id: %w", err)
		}
		token.ID = id
		return nil
	})
}

func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.db.GetContext(ctx, &t, `
SELECT id, token, user_id, expiry_date FROM password_reset_tokens WHERE token = ?`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.InvalidToken, "reset token not found")
		}
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	return &t, nil
}

// Consume writes the new password hash and deletes the token atomically;
// partial failure rolls back both writes.
func (r *PasswordResetTokenRepository) Consume(ctx context.Context, tokenID, userID int64, passwordHash string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
			passwordHash, time.Now().UTC(), userID)
		if err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if err := requireAffected(res, "user"); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE id = ?`, tokenID)
		if err != nil {
			return fmt.Errorf("delete consumed token: %w", err)
		}
		return requireAffected(res, "reset token")
	})
}

func (r *PasswordResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE expiry_date <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
