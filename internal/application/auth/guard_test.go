package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/pkg/jwt"
)

func newTestTokens(t *testing.T) *jwt.Manager {
	t.Helper()
	m, err := jwt.NewManager(jwt.Config{Secret: "guard-test-secret", Issuer: "suplegear-test", AccessTTL: time.Minute})
	require.NoError(t, err)
	return m
}

func TestAuthenticate_AccessTokenValido(t *testing.T) {
	tokens := newTestTokens(t)
	g := NewGuard(tokens)
	tok, err := tokens.IssueAccessToken("u1", entity.RoleVendor)
	require.NoError(t, err)

	id, err := g.Authenticate("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, entity.RoleVendor, id.Role)

	id, err = g.Authenticate("bearer   " + tok)
	require.NoError(t, err, "el esquema no distingue mayúsculas")
	assert.Equal(t, "u1", id.UserID)
}

func TestAuthenticate_Rechazos(t *testing.T) {
	tokens := newTestTokens(t)
	g := NewGuard(tokens)
	refresh, err := tokens.IssueRefreshToken("u1")
	require.NoError(t, err)
	badRole, err := tokens.IssueAccessToken("u1", "superuser")
	require.NoError(t, err)

	_, err = g.Authenticate("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = g.Authenticate("Bearer ")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	for name, header := range map[string]string{
		"sin esquema":   "abc.def.ghi",
		"basic":         "Basic dXNlcjpwYXNz",
		"basura":        "Bearer basura",
		"refresh token": "Bearer " + refresh,
		"rol inválido":  "Bearer " + badRole,
	} {
		_, err := g.Authenticate(header)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, name)
	}
}

func TestRequireMinRole(t *testing.T) {
	g := NewGuard(nil)
	admin := &Identity{UserID: "a", Role: entity.RoleAdmin}
	vendor := &Identity{UserID: "v", Role: entity.RoleVendor}
	customer := &Identity{UserID: "c", Role: entity.RoleCustomer}

	assert.NoError(t, g.RequireAdmin(admin))
	assert.ErrorIs(t, g.RequireAdmin(vendor), domain.ErrForbidden)
	assert.ErrorIs(t, g.RequireAdmin(nil), domain.ErrUnauthenticated)

	assert.NoError(t, g.RequireVendorOrAdmin(admin))
	assert.NoError(t, g.RequireVendorOrAdmin(vendor))
	assert.ErrorIs(t, g.RequireVendorOrAdmin(customer), domain.ErrForbidden)

	assert.NoError(t, g.RequireMinRole(nil, entity.RoleAnonymous))
	assert.NoError(t, g.RequireMinRole(customer, entity.RoleCustomer))
}

func TestIdentity_CanActOn(t *testing.T) {
	var nobody *Identity
	assert.False(t, nobody.CanActOn("u1"))
	assert.False(t, nobody.IsAdmin())

	assert.True(t, (&Identity{UserID: "u1", Role: entity.RoleCustomer}).CanActOn("u1"))
	assert.False(t, (&Identity{UserID: "u2", Role: entity.RoleVendor}).CanActOn("u1"))
	assert.True(t, (&Identity{UserID: "u2", Role: entity.RoleAdmin}).CanActOn("u1"))
}
