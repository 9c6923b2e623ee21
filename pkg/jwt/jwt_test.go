package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "suplegear-test"
)

func newTestManager(t *testing.T, now time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:     testSecret,
		Issuer:     testIssuer,
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return m.WithClock(func() time.Time { return now })
}

func TestNewManager_SecretVacio(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager(t, time.Now())
	tok, err := m.IssueAccessToken(testUserID, "vendor")
	require.NoError(t, err)

	c := m.DecodeAccess(tok)
	require.NotNil(t, c)
	assert.Equal(t, testUserID, c.UserID())
	assert.Equal(t, "vendor", c.Role)
	assert.Equal(t, TypeAccess, c.Type)
	assert.Equal(t, testIssuer, c.Issuer)
}

func TestRefreshToken_NoSirveComoAccess(t *testing.T) {
	m := newTestManager(t, time.Now())
	refresh, err := m.IssueRefreshToken(testUserID)
	require.NoError(t, err)
	access, err := m.IssueAccessToken(testUserID, "admin")
	require.NoError(t, err)

	assert.Nil(t, m.DecodeAccess(refresh), "un refresh no debe pasar como access")
	assert.Nil(t, m.DecodeRefresh(access), "un access no debe pasar como refresh")

	c := m.DecodeRefresh(refresh)
	require.NotNil(t, c)
	assert.Equal(t, testUserID, c.UserID())
	assert.Empty(t, c.Role)
}

func TestDecode_TokenExpirado(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m := newTestManager(t, issuedAt)
	tok, err := m.IssueAccessToken(testUserID, "admin")
	require.NoError(t, err)

	require.NotNil(t, m.Decode(tok))

	m.WithClock(func() time.Time { return issuedAt.Add(31 * time.Minute) })
	assert.Nil(t, m.Decode(tok), "token expirado debe decodificar a nil")
}

func TestDecode_SecretIncorrecto(t *testing.T) {
	m := newTestManager(t, time.Now())
	tok, err := m.IssueAccessToken(testUserID, "admin")
	require.NoError(t, err)

	other, err := NewManager(Config{Secret: "otro-secret-completamente-distinto", Issuer: testIssuer})
	require.NoError(t, err)
	assert.Nil(t, other.Decode(tok))
}

func TestDecode_IssuerDistinto(t *testing.T) {
	m := newTestManager(t, time.Now())
	tok, err := m.IssueAccessToken(testUserID, "admin")
	require.NoError(t, err)

	other, err := NewManager(Config{Secret: testSecret, Issuer: "otro-issuer"})
	require.NoError(t, err)
	assert.Nil(t, other.Decode(tok))
}

func TestDecode_RechazaAlgoritmoNone(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   testUserID,
			Issuer:    testIssuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
		Type: TypeAccess,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m := newTestManager(t, time.Now())
	assert.Nil(t, m.Decode(tok))
}

func TestDecode_Basura(t *testing.T) {
	m := newTestManager(t, time.Now())
	assert.Nil(t, m.Decode(""))
	assert.Nil(t, m.Decode("token.invalido.aqui"))
}
