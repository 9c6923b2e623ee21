package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalIdentity = "identity"
)

// roleGuard solo autoriza por rol; no decodifica tokens.
var roleGuard = auth.NewGuard(nil)

// AuthMiddleware exige un access token válido y carga la identidad en c.Locals.
func AuthMiddleware(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := guard.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeError(c, err)
		}
		setIdentity(c, id)
		return c.Next()
	}
}

// RequireRole exige al menos el rol min (anonymous < customer < vendor < admin).
// Debe ir después de AuthMiddleware.
func RequireRole(min string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := roleGuard.RequireMinRole(GetIdentity(c), min); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// RequireAdmin solo admin.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.RoleAdmin)
}

// RequireVendorOrAdmin vendor o admin.
func RequireVendorOrAdmin() fiber.Handler {
	return RequireRole(entity.RoleVendor)
}

func setIdentity(c *fiber.Ctx, id *auth.Identity) {
	c.Locals(LocalIdentity, id)
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalRole, id.Role)
}

// GetIdentity devuelve la identidad de la petición o nil si es anónima.
func GetIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(LocalIdentity).(*auth.Identity)
	return id
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto; anonymous si no hay identidad.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	if s == "" {
		return entity.RoleAnonymous
	}
	return s
}
