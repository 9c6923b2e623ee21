package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashea y verifica contraseñas con bcrypt (salt embebido en cada hash).
type Hasher struct {
	cost int
}

// NewHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash bcrypt de plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify compara plaintext con el hash almacenado. Un hash malformado devuelve false.
func (h *Hasher) Verify(plaintext, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
