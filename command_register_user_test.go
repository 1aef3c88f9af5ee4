package shop_test

import (
	"context"
	"testing"

	shop "github.com/garageworks/shop-manager"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	handler := shop.NewRegisterUserHandler(repo)

	err := handler.Execute(ctx, shop.RegisterUserMessage{
		Email:    "new.user@example.com",
		Password: "secret-password",
		FullName: "New User",
		Role:     shop.RoleAdmin,
	})
	require.NoError(t, err)

	credential, err := repo.Credentials().GetByEmail(ctx, "new.user@example.com")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, credential.ID)

	// the stored hash verifies against the original password
	require.NoError(t, shop.ComparePasswordAndHash("secret-password", credential.PasswordHash))

	profile, err := repo.Users().GetByCredentialID(ctx, credential.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", profile.Email)
	assert.Equal(t, "New User", profile.FullName)
	assert.Equal(t, shop.RoleAdmin, profile.Role)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	handler := shop.NewRegisterUserHandler(repo)

	msg := shop.RegisterUserMessage{
		Email:    "dup@example.com",
		Password: "secret-password",
		FullName: "First User",
	}
	require.NoError(t, handler.Execute(ctx, msg))

	err := handler.Execute(ctx, msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrUserExists)
}

func TestRegisterUserDefaultRole(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	handler := shop.NewRegisterUserHandler(repo)

	err := handler.Execute(ctx, shop.RegisterUserMessage{
		Email:    "tech@example.com",
		Password: "secret-password",
		FullName: "Shop Tech",
	})
	require.NoError(t, err)

	credential, err := repo.Credentials().GetByEmail(ctx, "tech@example.com")
	require.NoError(t, err)

	profile, err := repo.Users().GetByCredentialID(ctx, credential.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.RoleMechanic, profile.Role)
}

func TestRegisterUserInvalidRole(t *testing.T) {
	repo := setupTestRepo(t)

	handler := shop.NewRegisterUserHandler(repo)

	err := handler.Execute(context.Background(), shop.RegisterUserMessage{
		Email:    "bad.role@example.com",
		Password: "secret-password",
		FullName: "Bad Role",
		Role:     "superuser",
	})
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryValidation, richErr.Category)

	// no partial account is left behind
	_, err = repo.Credentials().GetByEmail(context.Background(), "bad.role@example.com")
	assert.True(t, goerrors.IsNotFound(err))
}

func TestRegisterUserEmptyPassword(t *testing.T) {
	repo := setupTestRepo(t)

	handler := shop.NewRegisterUserHandler(repo)

	err := handler.Execute(context.Background(), shop.RegisterUserMessage{
		Email:    "no.password@example.com",
		FullName: "No Password",
	})
	require.Error(t, err)

	_, err = repo.Credentials().GetByEmail(context.Background(), "no.password@example.com")
	assert.True(t, goerrors.IsNotFound(err))
}

func TestRegisterUserPartialFailureRollsBack(t *testing.T) {
	repo, bunDB := setupTestRepoDB(t)
	ctx := context.Background()

	// make the profile insert fail after the credential insert succeeds
	_, err := bunDB.Exec("DROP TABLE users")
	require.NoError(t, err)

	handler := shop.NewRegisterUserHandler(repo)

	err = handler.Execute(ctx, shop.RegisterUserMessage{
		Email:    "half.done@example.com",
		Password: "secret-password",
		FullName: "Half Done",
	})
	require.Error(t, err)

	// a non-duplicate DB failure surfaces as internal, not conflict
	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryInternal, richErr.Category)

	// the credential insert rolled back with the transaction
	_, err = repo.Credentials().GetByEmail(ctx, "half.done@example.com")
	assert.True(t, goerrors.IsNotFound(err))
}

func TestRegisterUserHashid(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	handler := shop.NewRegisterUserHandler(repo)

	err := handler.Execute(ctx, shop.RegisterUserMessage{
		Email:     "stable@example.com",
		Password:  "secret-password",
		FullName:  "Stable ID",
		UseHashid: true,
	})
	require.NoError(t, err)

	expected, err := hashid.NewUUID("stable@example.com")
	require.NoError(t, err)

	credential, err := repo.Credentials().GetByEmail(ctx, "stable@example.com")
	require.NoError(t, err)
	assert.Equal(t, expected, credential.ID)
}

func TestRegisterUserRecordsActivity(t *testing.T) {
	repo := setupTestRepo(t)

	var recorded []shop.ActivityEvent
	sink := shop.ActivitySinkFunc(func(ctx context.Context, event shop.ActivityEvent) error {
		recorded = append(recorded, event)
		return nil
	})

	handler := shop.NewRegisterUserHandler(repo).WithActivitySink(sink)

	err := handler.Execute(context.Background(), shop.RegisterUserMessage{
		Email:    "tracked@example.com",
		Password: "secret-password",
		FullName: "Tracked User",
	})
	require.NoError(t, err)

	require.Len(t, recorded, 1)
	assert.Equal(t, shop.ActivityEventUserRegistered, recorded[0].EventType)
	assert.Equal(t, "tracked@example.com", recorded[0].Identifier)
	assert.NotEmpty(t, recorded[0].UserID)
}
