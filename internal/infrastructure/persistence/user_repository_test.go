package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("idp|alice", "Alice@Example.com", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by external id", func(t *testing.T) {
		found, err := repo.FindByExternalID(ctx, "idp|alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.True(t, found.IsAdmin())
	})

	t.Run("duplicate external id", func(t *testing.T) {
		dup, _ := identity.NewUser("idp|alice", "other@example.com", identity.RoleUser)
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("update email", func(t *testing.T) {
		require.True(t, user.SyncEmail("alice@new.example.com"))
		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@new.example.com", found.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		ghost, _ := identity.NewUser("idp|ghost", "", identity.RoleUser)
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})
}
