package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"NOT_PLAYED", "PLAYING", "COMPLETED", "ABANDONED", "ON_HOLD", "WISHLIST"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	_, err := ParseStatus("playing")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestUserActive(t *testing.T) {
	user := User{Enabled: true, AccountNonExpired: true, AccountNonLocked: true, CredentialsNonExpired: true}
	assert.True(t, user.Active())

	locked := user
	locked.AccountNonLocked = false
	assert.False(t, locked.Active())

	disabled := user
	disabled.Enabled = false
	assert.False(t, disabled.Active())
}

func TestMyGameOwnedBy(t *testing.T) {
	entry := MyGame{OwnerUsername: "alice@example.com"}

	assert.True(t, entry.OwnedBy(Caller{Username: "alice@example.com", Role: RoleUser}))
	assert.False(t, entry.OwnedBy(Caller{Username: "bob@example.com", Role: RoleUser}))
	assert.True(t, entry.OwnedBy(Caller{Username: "bob@example.com", Role: RoleAdmin}))
}

func TestResetTokenExpiredBoundary(t *testing.T) {
	expiry := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)
	token := PasswordResetToken{ExpiryDate: expiry}

	assert.False(t, token.Expired(expiry.Add(-time.Nanosecond)))
	assert.True(t, token.Expired(expiry))
	assert.True(t, token.Expired(expiry.Add(time.Second)))
}
