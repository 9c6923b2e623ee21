package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token. El guard solo acepta access; el refresh solo acepta refresh.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role va en el access token para que el guard decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
	Type string `json:"type"`
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string {
	return c.Subject
}

// Config parámetros del emisor de tokens.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Manager emite y valida tokens HS256 con un secreto compartido. No guarda estado.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager construye el manager. El secreto es obligatorio.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{cfg: cfg, now: time.Now}, nil
}

// WithClock reemplaza el reloj (tests y expiración determinista).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// AccessTTL duración de los access tokens.
func (m *Manager) AccessTTL() time.Duration {
	return m.cfg.AccessTTL
}

// IssueAccessToken genera un access token con sub y role.
func (m *Manager) IssueAccessToken(subjectID, role string) (string, error) {
	return m.sign(subjectID, role, TypeAccess, m.cfg.AccessTTL)
}

// IssueRefreshToken genera un refresh token solo con sub.
func (m *Manager) IssueRefreshToken(subjectID string) (string, error) {
	return m.sign(subjectID, "", TypeRefresh, m.cfg.RefreshTTL)
}

func (m *Manager) sign(subjectID, role, typ string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Type: typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Decode valida firma, expiración e issuer. Devuelve nil ante cualquier fallo.
func (m *Manager) Decode(tokenString string) *Claims {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil
	}
	return claims
}

// DecodeAccess como Decode pero exige type=access.
func (m *Manager) DecodeAccess(tokenString string) *Claims {
	return m.decodeType(tokenString, TypeAccess)
}

// DecodeRefresh como Decode pero exige type=refresh.
func (m *Manager) DecodeRefresh(tokenString string) *Claims {
	return m.decodeType(tokenString, TypeRefresh)
}

func (m *Manager) decodeType(tokenString, typ string) *Claims {
	c := m.Decode(tokenString)
	if c == nil || c.Type != typ {
		return nil
	}
	return c
}
