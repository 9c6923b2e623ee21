package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	uow    ports.UnitOfWork
	hasher ports.PasswordHasher
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(uow ports.UnitOfWork, hasher ports.PasswordHasher) *UserUseCase {
	return &UserUseCase{uow: uow, hasher: hasher, now: time.Now}
}

// Create registra un usuario con el rol indicado. Email y username deben estar libres.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, domain.NewValidation("rol inválido")
	}
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" || in.Password == "" {
		return nil, domain.NewValidation("email, username y password son requeridos")
	}

	var user *entity.User
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		users := store.Users()
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		existing, err = users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUsernameTaken
		}
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		user = &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			Username:     username,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Phone:        strings.TrimSpace(in.Phone),
			Address:      strings.TrimSpace(in.Address),
			Role:         role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	var user *entity.User
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		user, err = store.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Update aplica una actualización parcial. Solo el dueño o un admin;
// rol y estado activo solo los cambia un admin.
func (uc *UserUseCase) Update(ctx context.Context, requester *auth.Identity, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !requester.CanActOn(id) {
		return nil, domain.ErrForbidden
	}
	if (in.Role != nil || in.IsActive != nil) && !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var user *entity.User
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		users := store.Users()
		var err error
		user, err = users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if in.Email != nil {
			email := normalizeEmail(*in.Email)
			if email != user.Email {
				other, err := users.GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if other != nil && other.ID != user.ID {
					return domain.ErrEmailAlreadyExists
				}
				user.Email = email
			}
		}
		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if username != user.Username {
				other, err := users.GetByUsername(ctx, username)
				if err != nil {
					return err
				}
				if other != nil && other.ID != user.ID {
					return domain.ErrUsernameTaken
				}
				user.Username = username
			}
		}
		if in.Password != nil {
			hash, err := uc.hasher.Hash(*in.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if in.FirstName != nil {
			user.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			user.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Phone != nil {
			user.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Address != nil {
			user.Address = strings.TrimSpace(*in.Address)
		}
		if in.Role != nil {
			if !entity.IsValidRole(*in.Role) {
				return domain.NewValidation("rol inválido")
			}
			user.Role = *in.Role
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		user.UpdatedAt = uc.now().UTC()
		return users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina físicamente un usuario (solo admin, lo controla el guard).
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.uow.Do(ctx, func(store repository.Store) error {
		user, err := store.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		return store.Users().Delete(ctx, id)
	})
}

// Search busca usuarios por email, username o nombre. Sin resultados no es error.
func (uc *UserUseCase) Search(ctx context.Context, query string, p pagination.Params) (*dto.UserListResponse, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	var (
		list  []*entity.User
		total int
	)
	err = uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		list, total, err = store.Users().Search(ctx, q, p.Limit(), p.Offset())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: pagination.NewMeta(total, p)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
