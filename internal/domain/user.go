package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a stored role string back to a Role constant.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents an account of the system. Username is an email address,
// unique at the store level.
type User struct {
	ID                    int64     `db:"id"`
	Username              string    `db:"username"`
	PasswordHash          string    `db:"password_hash"`
	Role                  Role      `db:"role"`
	Enabled               bool      `db:"enabled"`
	AccountNonExpired     bool      `db:"account_non_expired"`
	AccountNonLocked      bool      `db:"account_non_locked"`
	CredentialsNonExpired bool      `db:"credentials_non_expired"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// Active reports whether the account may authenticate and act.
func (u *User) Active() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}

// Caller identifies the authenticated requester. It is built by the request
// layer from a verified token and passed explicitly into services; the role is
// re-resolved from the store on every request, never read from the token.
type Caller struct {
	Username string
	Role     Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
