package shop_test

import (
	"context"
	"testing"
	"time"

	shop "github.com/garageworks/shop-manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAuthConfig struct {
	signingKey string
	expiration time.Duration
}

func (c testAuthConfig) GetSigningKey() string             { return c.signingKey }
func (c testAuthConfig) GetSigningMethod() string          { return "HS256" }
func (c testAuthConfig) GetContextKey() string             { return "user" }
func (c testAuthConfig) GetTokenExpiration() time.Duration { return c.expiration }
func (c testAuthConfig) GetTokenLookup() string            { return "header:Authorization" }
func (c testAuthConfig) GetAuthScheme() string             { return "Bearer" }
func (c testAuthConfig) GetIssuer() string                 { return "shop-manager" }

func newTestAuthenticator(t *testing.T, repo shop.RepositoryManager) *shop.Auther {
	t.Helper()

	provider := shop.NewUserProvider(repo)
	return shop.NewAuthenticator(provider, testAuthConfig{
		signingKey: "test-signing-key",
		expiration: time.Hour,
	})
}

func TestAutherLogin(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registerTestUser(t, repo, "admin@example.com", "secret-password", shop.RoleAdmin)

	auth := newTestAuthenticator(t, repo)

	token, identity, err := auth.Login(ctx, "admin@example.com", "secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, identity)

	assert.Equal(t, "admin@example.com", identity.Email())
	assert.Equal(t, shop.RoleAdmin, identity.Role())

	// the minted token round trips into a session for the same user
	session, err := auth.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), session.GetUserID())

	resolved, err := auth.IdentityFromSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), resolved.ID())
	assert.Equal(t, identity.Email(), resolved.Email())
}

func TestAutherLoginInvalidPassword(t *testing.T) {
	repo := setupTestRepo(t)

	registerTestUser(t, repo, "admin@example.com", "secret-password", shop.RoleAdmin)

	auth := newTestAuthenticator(t, repo)

	token, identity, err := auth.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, identity)
}

func TestAutherLoginUnknownUser(t *testing.T) {
	repo := setupTestRepo(t)

	auth := newTestAuthenticator(t, repo)

	_, _, err := auth.Login(context.Background(), "ghost@example.com", "secret-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
}

func TestAutherSessionFromTokenInvalid(t *testing.T) {
	repo := setupTestRepo(t)

	auth := newTestAuthenticator(t, repo)

	_, err := auth.SessionFromToken("not.a.token")
	assert.Error(t, err)
}

func TestAutherSessionFromTokenExpired(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registerTestUser(t, repo, "admin@example.com", "secret-password", shop.RoleAdmin)

	provider := shop.NewUserProvider(repo)
	auth := shop.NewAuthenticator(provider, testAuthConfig{
		signingKey: "test-signing-key",
		expiration: -time.Hour,
	})

	token, _, err := auth.Login(ctx, "admin@example.com", "secret-password")
	require.NoError(t, err)

	_, err = auth.SessionFromToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrTokenExpired)
}

func TestAutherActivitySink(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	registerTestUser(t, repo, "admin@example.com", "secret-password", shop.RoleAdmin)

	var events []shop.ActivityEvent
	sink := shop.ActivitySinkFunc(func(ctx context.Context, event shop.ActivityEvent) error {
		events = append(events, event)
		return nil
	})

	auth := newTestAuthenticator(t, repo).WithActivitySink(sink)

	_, _, err := auth.Login(ctx, "admin@example.com", "wrong")
	require.Error(t, err)

	_, identity, err := auth.Login(ctx, "admin@example.com", "secret-password")
	require.NoError(t, err)

	require.Len(t, events, 2)

	assert.Equal(t, shop.ActivityEventLoginFailure, events[0].EventType)
	assert.Equal(t, "admin@example.com", events[0].Identifier)
	assert.Empty(t, events[0].UserID)
	assert.False(t, events[0].OccurredAt.IsZero())

	assert.Equal(t, shop.ActivityEventLoginSuccess, events[1].EventType)
	assert.Equal(t, identity.ID(), events[1].UserID)
}
