package ports

import (
	"time"

	"github.com/jhoicas/suplegear-api/pkg/jwt"
)

// PasswordHasher lo implementa *password.Hasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) bool
}

// TokenService emisor/validador de tokens; lo implementa *jwt.Manager.
type TokenService interface {
	IssueAccessToken(subjectID, role string) (string, error)
	IssueRefreshToken(subjectID string) (string, error)
	DecodeAccess(token string) *jwt.Claims
	DecodeRefresh(token string) *jwt.Claims
	AccessTTL() time.Duration
}

// AuthObserver recibe eventos de autenticación (métricas). Opcional.
type AuthObserver interface {
	IncLogin(result string)
	IncToken(typ string)
}
