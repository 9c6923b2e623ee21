package auth

import (
	"strings"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/pkg/jwt"
)

// Identity quién hace la petición. Solo vive durante la petición.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin indica si la identidad es administradora.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == entity.RoleAdmin
}

// CanActOn indica si la identidad puede operar sobre recursos de userID (dueño o admin).
func (i *Identity) CanActOn(userID string) bool {
	return i != nil && (i.UserID == userID || i.IsAdmin())
}

type accessDecoder interface {
	DecodeAccess(token string) *jwt.Claims
}

// Guard autentica el header Authorization y autoriza por rol. No guarda estado.
type Guard struct {
	tokens accessDecoder
}

// NewGuard construye el guard sobre el decodificador de access tokens.
func NewGuard(tokens accessDecoder) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate parsea "Bearer <token>" y decodifica un access token.
// Un refresh token no autentica.
func (g *Guard) Authenticate(authorizationHeader string) (*Identity, error) {
	header := strings.TrimSpace(authorizationHeader)
	if header == "" {
		return nil, domain.ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, domain.ErrInvalidToken
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims := g.tokens.DecodeAccess(token)
	if claims == nil || !entity.IsValidRole(claims.Role) {
		return nil, domain.ErrInvalidToken
	}
	return &Identity{UserID: claims.UserID(), Role: claims.Role}, nil
}

// RequireAdmin exige rol admin.
func (g *Guard) RequireAdmin(id *Identity) error {
	return g.RequireMinRole(id, entity.RoleAdmin)
}

// RequireVendorOrAdmin exige rol vendor o admin.
func (g *Guard) RequireVendorOrAdmin(id *Identity) error {
	return g.RequireMinRole(id, entity.RoleVendor)
}

// RequireMinRole exige al menos min en el orden anonymous < customer < vendor < admin.
func (g *Guard) RequireMinRole(id *Identity, min string) error {
	if id == nil {
		if min == entity.RoleAnonymous {
			return nil
		}
		return domain.ErrUnauthenticated
	}
	if !entity.RoleAtLeast(id.Role, min) {
		return domain.ErrForbidden
	}
	return nil
}
