package shop_test

import (
	"context"
	"testing"

	shop "github.com/garageworks/shop-manager"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyIdentity(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registerTestUser(t, repo, "admin@example.com", "secret-password", shop.RoleAdmin)

	provider := shop.NewUserProvider(repo)

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(ctx, "admin@example.com", "secret-password")
		require.NoError(t, err)
		require.NotNil(t, identity)

		assert.Equal(t, "admin@example.com", identity.Email())
		assert.Equal(t, "Test User", identity.Name())
		assert.Equal(t, shop.RoleAdmin, identity.Role())
		assert.NotEmpty(t, identity.ID())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "admin@example.com", "not-the-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		// indistinguishable from a wrong password
		_, err := provider.VerifyIdentity(ctx, "nobody@example.com", "secret-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
	})
}

func TestVerifyIdentityOrphanCredential(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	hash, err := shop.HashPassword("secret-password")
	require.NoError(t, err)

	_, err = repo.Credentials().Create(ctx, &shop.Credential{
		Email:        "orphan@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	provider := shop.NewUserProvider(repo)

	_, err = provider.VerifyIdentity(ctx, "orphan@example.com", "secret-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrIdentityNotFound)
}

func TestFindIdentityByIdentifier(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registerTestUser(t, repo, "mechanic@example.com", "secret-password", shop.RoleMechanic)

	provider := shop.NewUserProvider(repo)

	verified, err := provider.VerifyIdentity(ctx, "mechanic@example.com", "secret-password")
	require.NoError(t, err)

	t.Run("resolves credential id", func(t *testing.T) {
		identity, err := provider.FindIdentityByIdentifier(ctx, verified.ID())
		require.NoError(t, err)
		assert.Equal(t, verified.ID(), identity.ID())
		assert.Equal(t, "mechanic@example.com", identity.Email())
		assert.Equal(t, shop.RoleMechanic, identity.Role())
	})

	t.Run("malformed identifier", func(t *testing.T) {
		_, err := provider.FindIdentityByIdentifier(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.ErrorIs(t, err, shop.ErrIdentityNotFound)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := provider.FindIdentityByIdentifier(ctx, "3f2f84f1-9a10-4c2b-8f59-1f1f8f4f0001")
		require.Error(t, err)
		assert.ErrorIs(t, err, shop.ErrIdentityNotFound)
	})

	t.Run("role change is visible without re-login", func(t *testing.T) {
		credentialID, parseErr := uuid.Parse(verified.ID())
		require.NoError(t, parseErr)

		profile, err := repo.Users().GetByCredentialID(ctx, credentialID)
		require.NoError(t, err)

		profile.Role = shop.RoleAdmin
		_, err = repo.Users().Update(ctx, profile, repository.UpdateByID(profile.ID.String()))
		require.NoError(t, err)

		identity, err := provider.FindIdentityByIdentifier(ctx, verified.ID())
		require.NoError(t, err)
		assert.Equal(t, shop.RoleAdmin, identity.Role())
	})
}

func TestVerifyIdentityNotFoundIsRich(t *testing.T) {
	repo := setupTestRepo(t)

	provider := shop.NewUserProvider(repo)

	_, err := provider.VerifyIdentity(context.Background(), "ghost@example.com", "pw")
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryAuth, richErr.Category)
}
