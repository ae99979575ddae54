package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusNotPlayed Status = "NOT_PLAYED"
	StatusPlaying   Status = "PLAYING"
	StatusCompleted Status = "COMPLETED"
	StatusAbandoned Status = "ABANDONED"
	StatusOnHold    Status = "ON_HOLD"
	StatusWishlist  Status = "WISHLIST"
)

// ParseStatus validates a wire-level status value. Invalid values must be
// rejected at the boundary and never reach a repository.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotPlayed, StatusPlaying, StatusCompleted, StatusAbandoned, StatusOnHold, StatusWishlist:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// MyGame is a collection entry owned by exactly one user. The owner reference
// is immutable; joined display fields are filled by the repository.
type MyGame struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	OwnerUsername string    `db:"owner_username"`
	GameID        int64     `db:"game_id"`
	GameTitle     string    `db:"game_title"`
	PlatformID    int64     `db:"platform_id"`
	PlatformName  string    `db:"platform_name"`
	SourceID      int64     `db:"source_id"`
	SourceName    string    `db:"source_name"`
	Status        Status    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// OwnedBy applies the ownership-or-role gate: the owner and admins pass.
func (m *MyGame) OwnedBy(caller Caller) bool {
	return m.OwnerUsername == caller.Username || caller.IsAdmin()
}

// MyGameFilter narrows a caller's listing. Zero values mean "no filter".
type MyGameFilter struct {
	Title      string
	PlatformID int64
	SourceID   int64
}
