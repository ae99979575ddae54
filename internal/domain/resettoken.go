package domain

import "time"

// PasswordResetToken is a single-use, time-limited secret bound to one user.
// At most one live token exists per user; issuing a new one supersedes it.
type PasswordResetToken struct {
	ID         int64     `db:"id"`
	Token      string    `db:"token"`
	UserID     int64     `db:"user_id"`
	ExpiryDate time.Time `db:"expiry_date"`
}

// Expired reports whether the token is unusable at the given instant.
// The boundary instant itself counts as expired.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiryDate)
}
