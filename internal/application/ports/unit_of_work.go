package ports

import (
	"context"

	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

// UnitOfWork ejecuta fn con repositorios atados a una misma transacción.
// Si fn devuelve error se hace rollback; si no, un único commit.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(store repository.Store) error) error
}
