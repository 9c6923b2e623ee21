package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// RoleAnonymous no se persiste; representa una petición sin token.
const RoleAnonymous = "anonymous"

// roleRank orden de privilegios: anonymous < customer < vendor < admin.
var roleRank = map[string]int{
	RoleAnonymous: 0,
	RoleCustomer:  1,
	RoleVendor:    2,
	RoleAdmin:     3,
}

// IsValidRole indica si el rol puede asignarse a un usuario.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVendor, RoleCustomer:
		return true
	}
	return false
}

// RoleAtLeast indica si role tiene al menos los privilegios de min. Roles desconocidos valen como anonymous.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// User representa una cuenta de la tienda.
type User struct {
	ID            string
	Email         string // único
	Username      string // único
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName     string
	LastName      string
	Phone         string
	Address       string
	Role          string // admin, vendor, customer
	IsActive      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName nombre para mostrar; cae al username si no hay nombre.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
