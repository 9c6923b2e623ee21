package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/memory"
	"github.com/jhoicas/suplegear-api/pkg/password"
)

type recordingObserver struct {
	logins []string
	tokens []string
}

func (o *recordingObserver) IncLogin(result string) { o.logins = append(o.logins, result) }
func (o *recordingObserver) IncToken(typ string)    { o.tokens = append(o.tokens, typ) }

type authFixture struct {
	uc       *AuthUseCase
	store    *memory.Store
	observer *recordingObserver
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	hasher := password.NewHasher(bcrypt.MinCost)
	store := memory.NewStore()
	hash, err := hasher.Hash("supersecreto")
	require.NoError(t, err)

	users := []*entity.User{
		{ID: "u-active", Email: "ana@example.com", Username: "ana", PasswordHash: hash, Role: entity.RoleCustomer, IsActive: true},
		{ID: "u-off", Email: "off@example.com", Username: "off", PasswordHash: hash, Role: entity.RoleVendor, IsActive: false},
	}
	require.NoError(t, store.Do(context.Background(), func(s repository.Store) error {
		for _, u := range users {
			if err := s.Users().Create(context.Background(), u); err != nil {
				return err
			}
		}
		return nil
	}))

	obs := &recordingObserver{}
	return &authFixture{
		uc:       NewAuthUseCase(store, hasher, newTestTokens(t), obs),
		store:    store,
		observer: obs,
	}
}

func TestLogin_OK(t *testing.T) {
	f := newAuthFixture(t)
	res, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@example.com", Password: "supersecreto"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, int(time.Minute.Seconds()), res.ExpiresIn)
	require.NotNil(t, res.User)
	assert.Equal(t, "u-active", res.User.ID)

	assert.Equal(t, []string{"success"}, f.observer.logins)
	assert.Equal(t, []string{"access", "refresh"}, f.observer.tokens)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err2 := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err2, domain.ErrInvalidCredentials)
	assert.Equal(t, err.Error(), err2.Error(), "no se distingue usuario inexistente de password incorrecto")

	assert.Equal(t, []string{"invalid_credentials", "invalid_credentials"}, f.observer.logins)
	assert.Empty(t, f.observer.tokens)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "off@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "off@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "el password se revisa antes que el estado")
}

func TestRefresh_EmiteNuevoAccess(t *testing.T) {
	f := newAuthFixture(t)
	login, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)

	res, err := f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, login.RefreshToken, res.RefreshToken)
	assert.Nil(t, res.User)
}

func TestRefresh_DevuelveTokenSinEspacios(t *testing.T) {
	f := newAuthFixture(t)
	login, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)

	res, err := f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "  " + login.RefreshToken + "\n"})
	require.NoError(t, err)
	assert.Equal(t, login.RefreshToken, res.RefreshToken)
}

func TestRefresh_Rechazos(t *testing.T) {
	f := newAuthFixture(t)
	login, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "supersecreto"})
	require.NoError(t, err)

	_, err = f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "un access token no sirve para refresh")

	_, err = f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "basura"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	tokens := newTestTokens(t)
	ghost, err := tokens.IssueRefreshToken("u-borrado")
	require.NoError(t, err)
	_, err = f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: ghost})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	off, err := tokens.IssueRefreshToken("u-off")
	require.NoError(t, err)
	_, err = f.uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: off})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}
