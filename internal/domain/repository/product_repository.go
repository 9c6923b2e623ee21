package repository

import (
	"context"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, int, error)
	// Search busca por nombre o descripción (ILIKE).
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Product, int, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, int, error)
	// ListLowStock productos activos con stock <= threshold.
	ListLowStock(ctx context.Context, threshold, limit, offset int) ([]*entity.Product, int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
