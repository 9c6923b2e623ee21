package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	uow ports.UnitOfWork
	now func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(uow ports.UnitOfWork) *ProductUseCase {
	return &ProductUseCase{uow: uow, now: time.Now}
}

var (
	errInvalidPrice = domain.NewValidation("el precio debe ser mayor a 0, tener máximo 2 decimales y no superar 9999999999.99")
	errInvalidStock = domain.NewValidation("el stock debe estar entre 0 y 2147483647")
	errEmptyName    = domain.NewValidation("el nombre no puede estar vacío")
	errEmptySKU     = domain.NewValidation("el SKU no puede estar vacío")
)

// Create crea un producto. La categoría debe existir y el SKU estar libre; si algo falla no se escribe nada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidPrice(in.Price) {
		return nil, errInvalidPrice
	}
	if !entity.ValidStock(in.Stock) {
		return nil, errInvalidStock
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errEmptyName
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, errEmptySKU
	}
	status := in.Status
	if status == "" {
		status = entity.ProductStatusActive
	}
	if !entity.IsValidProductStatus(status) {
		return nil, domain.NewValidation("estado de producto inválido")
	}

	var product *entity.Product
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		cat, err := store.Categories().GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
		existing, err := store.Products().GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrSKUAlreadyExists
		}
		now := uc.now().UTC()
		product = &entity.Product{
			ID:          uuid.New().String(),
			Name:        name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			SKU:         sku,
			CategoryID:  cat.ID,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return store.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		product, err = store.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update actualiza un producto. Si cambia la categoría debe existir; si cambia el SKU debe estar libre.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price != nil && !entity.ValidPrice(*in.Price) {
		return nil, errInvalidPrice
	}
	if in.Stock != nil && !entity.ValidStock(*in.Stock) {
		return nil, errInvalidStock
	}
	if in.Status != nil && !entity.IsValidProductStatus(*in.Status) {
		return nil, domain.NewValidation("estado de producto inválido")
	}
	var name, sku *string
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return nil, errEmptyName
		}
		name = &v
	}
	if in.SKU != nil {
		v := strings.TrimSpace(*in.SKU)
		if v == "" {
			return nil, errEmptySKU
		}
		sku = &v
	}

	var product *entity.Product
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		products := store.Products()
		var err error
		product, err = products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
			cat, err := store.Categories().GetByID(ctx, *in.CategoryID)
			if err != nil {
				return err
			}
			if cat == nil {
				return domain.ErrCategoryNotFound
			}
			product.CategoryID = cat.ID
		}
		if sku != nil && *sku != product.SKU {
			other, err := products.GetBySKU(ctx, *sku)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrSKUAlreadyExists
			}
			product.SKU = *sku
		}
		if name != nil {
			product.Name = *name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Stock != nil {
			product.Stock = *in.Stock
		}
		if in.Status != nil {
			product.Status = *in.Status
		}
		product.UpdatedAt = uc.now().UTC()
		return products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista los productos activos.
func (uc *ProductUseCase) List(ctx context.Context, p pagination.Params) (*dto.ProductListResponse, error) {
	return uc.list(ctx, p, func(products repository.ProductRepository) ([]*entity.Product, int, error) {
		return products.ListActive(ctx, p.Limit(), p.Offset())
	})
}

// Search busca por nombre o descripción.
func (uc *ProductUseCase) Search(ctx context.Context, query string, p pagination.Params) (*dto.ProductListResponse, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, p, func(products repository.ProductRepository) ([]*entity.Product, int, error) {
		return products.Search(ctx, q, p.Limit(), p.Offset())
	})
}

// ListByCategory lista los productos de una categoría existente.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string, p pagination.Params) (*dto.ProductListResponse, error) {
	var (
		list  []*entity.Product
		total int
	)
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		cat, err := store.Categories().GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
		list, total, err = store.Products().ListByCategory(ctx, categoryID, p.Limit(), p.Offset())
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductList(list, total, p), nil
}

// ListLowStock productos activos con stock <= threshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, threshold int, p pagination.Params) (*dto.ProductListResponse, error) {
	if threshold < 0 {
		return nil, domain.NewValidation("threshold no puede ser negativo")
	}
	return uc.list(ctx, p, func(products repository.ProductRepository) ([]*entity.Product, int, error) {
		return products.ListLowStock(ctx, threshold, p.Limit(), p.Offset())
	})
}

func (uc *ProductUseCase) list(ctx context.Context, p pagination.Params, fetch func(repository.ProductRepository) ([]*entity.Product, int, error)) (*dto.ProductListResponse, error) {
	var (
		list  []*entity.Product
		total int
	)
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		list, total, err = fetch(store.Products())
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductList(list, total, p), nil
}

func toProductList(list []*entity.Product, total int, p pagination.Params) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, prod := range list {
		items = append(items, *dto.ToProductResponse(prod))
	}
	return &dto.ProductListResponse{Items: items, Page: pagination.NewMeta(total, p)}
}
