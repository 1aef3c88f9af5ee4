package shop_test

import (
	"testing"
	"time"

	shop "github.com/garageworks/shop-manager"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newTestClaims(sub, role string) *shop.JWTClaims {
	now := time.Now()
	return &shop.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserRole: role,
	}
}

func TestJWTClaimsAccessors(t *testing.T) {
	claims := newTestClaims("cred-1", shop.RoleMechanic)

	assert.Equal(t, "cred-1", claims.Subject())
	assert.Equal(t, "cred-1", claims.UserID())
	assert.Equal(t, shop.RoleMechanic, claims.Role())
	assert.False(t, claims.Expires().IsZero())
	assert.False(t, claims.IssuedAt().IsZero())
}

func TestJWTClaimsRoleChecks(t *testing.T) {
	mechanic := newTestClaims("cred-1", shop.RoleMechanic)
	admin := newTestClaims("cred-2", shop.RoleAdmin)

	assert.True(t, mechanic.HasRole(shop.RoleMechanic))
	assert.False(t, mechanic.HasRole(shop.RoleAdmin))
	assert.True(t, admin.HasRole(shop.RoleAdmin))

	assert.True(t, admin.IsAtLeast(shop.RoleMechanic))
	assert.True(t, admin.IsAtLeast(shop.RoleAdmin))
	assert.False(t, mechanic.IsAtLeast(shop.RoleAdmin))
}

func TestJWTClaimsZeroTimes(t *testing.T) {
	claims := &shop.JWTClaims{}
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}
