package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

// Resultados de login para métricas.
const (
	loginSuccess            = "success"
	loginInvalidCredentials = "invalid_credentials"
	loginInactive           = "inactive"
	loginError              = "error"
)

// AuthUseCase casos de uso de autenticación: login y refresh.
type AuthUseCase struct {
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	observer ports.AuthObserver
}

// NewAuthUseCase construye el caso de uso de auth. observer puede ser nil.
func NewAuthUseCase(uow ports.UnitOfWork, hasher ports.PasswordHasher, tokens ports.TokenService, observer ports.AuthObserver) *AuthUseCase {
	return &AuthUseCase{uow: uow, hasher: hasher, tokens: tokens, observer: observer}
}

// Login verifica email/password y emite access + refresh.
// Usuario inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
// La cuenta inactiva se revisa después del password.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var out *dto.TokenResponse
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		user, err := store.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil || !uc.hasher.Verify(in.Password, user.PasswordHash) {
			return domain.ErrInvalidCredentials
		}
		if !user.IsActive {
			return domain.ErrInactiveAccount
		}
		access, err := uc.tokens.IssueAccessToken(user.ID, user.Role)
		if err != nil {
			return err
		}
		refresh, err := uc.tokens.IssueRefreshToken(user.ID)
		if err != nil {
			return err
		}
		out = uc.tokenResponse(access, refresh)
		out.User = dto.ToUserResponse(user)
		return nil
	})
	uc.recordLogin(err)
	if err != nil {
		return nil, err
	}
	uc.inc(true)
	return out, nil
}

// Refresh acepta solo refresh tokens y emite un access token nuevo.
// Devuelve el mismo refresh token, sin espacios y sin rotación.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error) {
	refresh := strings.TrimSpace(in.RefreshToken)
	claims := uc.tokens.DecodeRefresh(refresh)
	if claims == nil {
		return nil, domain.ErrInvalidToken
	}
	var out *dto.TokenResponse
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		user, err := store.Users().GetByID(ctx, claims.UserID())
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if !user.IsActive {
			return domain.ErrInactiveAccount
		}
		access, err := uc.tokens.IssueAccessToken(user.ID, user.Role)
		if err != nil {
			return err
		}
		out = uc.tokenResponse(access, refresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.inc(false)
	return out, nil
}

func (uc *AuthUseCase) tokenResponse(access, refresh string) *dto.TokenResponse {
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(uc.tokens.AccessTTL().Seconds()),
	}
}

func (uc *AuthUseCase) recordLogin(err error) {
	if uc.observer == nil {
		return
	}
	switch {
	case err == nil:
		uc.observer.IncLogin(loginSuccess)
	case errors.Is(err, domain.ErrInvalidCredentials):
		uc.observer.IncLogin(loginInvalidCredentials)
	case errors.Is(err, domain.ErrInactiveAccount):
		uc.observer.IncLogin(loginInactive)
	default:
		uc.observer.IncLogin(loginError)
	}
}

// inc cuenta los tokens emitidos; withRefresh cuando también se emitió refresh.
func (uc *AuthUseCase) inc(withRefresh bool) {
	if uc.observer == nil {
		return
	}
	uc.observer.IncToken("access")
	if withRefresh {
		uc.observer.IncToken("refresh")
	}
}
