package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleAdmin, ParseRole(" ADMIN "))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}

func TestNewUser(t *testing.T) {
	t.Run("provisions user", func(t *testing.T) {
		u, err := NewUser("user_2abc", "Jane@Example.com", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "user_2abc", u.ExternalID)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.True(t, u.IsAdmin())

		events := u.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserProvisioned, events[0].EventType())
	})

	t.Run("invalid role falls back to user", func(t *testing.T) {
		u, err := NewUser("user_2abc", "", Role("owner"))
		require.NoError(t, err)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("requires external id", func(t *testing.T) {
		_, err := NewUser("  ", "a@b.c", RoleUser)
		require.Error(t, err)
	})
}

func TestUser_SyncEmail(t *testing.T) {
	u, err := NewUser("ext", "a@b.c", RoleUser)
	require.NoError(t, err)

	assert.False(t, u.SyncEmail(""))
	assert.False(t, u.SyncEmail("A@B.C"))
	assert.True(t, u.SyncEmail("new@b.c"))
	assert.Equal(t, "new@b.c", u.Email)
}

func TestUser_SyncRole(t *testing.T) {
	u, err := NewUser("ext", "a@b.c", RoleUser)
	require.NoError(t, err)

	assert.False(t, u.SyncRole(""))
	assert.False(t, u.SyncRole("user"))
	assert.True(t, u.SyncRole("Admin"))
	assert.Equal(t, RoleAdmin, u.Role)
}
