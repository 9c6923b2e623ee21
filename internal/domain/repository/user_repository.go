package repository

import (
	"context"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// Search busca por email, username, nombre o apellido (ILIKE). Devuelve la página y el total.
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.User, int, error)
}
