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

// CategoryUseCase casos de uso para categorías.
type CategoryUseCase struct {
	uow ports.UnitOfWork
	now func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(uow ports.UnitOfWork) *CategoryUseCase {
	return &CategoryUseCase{uow: uow, now: time.Now}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidation("name es requerido")
	}
	var cat *entity.Category
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		existing, err := store.Categories().GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicate("category", "ya existe una categoría con ese nombre")
		}
		now := uc.now().UTC()
		cat = &entity.Category{
			ID:          uuid.New().String(),
			Name:        name,
			Description: in.Description,
			Icon:        strings.TrimSpace(in.Icon),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return store.Categories().Create(ctx, cat)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Get obtiene una categoría por ID.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var cat *entity.Category
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		cat, err = store.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByName busca una categoría por nombre; nil si no existe.
func (uc *CategoryUseCase) GetByName(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	var cat *entity.Category
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		cat, err = store.Categories().GetByName(ctx, strings.TrimSpace(name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, p pagination.Params) (*dto.CategoryListResponse, error) {
	var (
		list  []*entity.Category
		total int
	)
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		list, total, err = store.Categories().List(ctx, p.Limit(), p.Offset())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: pagination.NewMeta(total, p)}, nil
}

// Delete elimina una categoría sin productos. Con productos asociados devuelve Conflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.uow.Do(ctx, func(store repository.Store) error {
		cat, err := store.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrCategoryNotFound
		}
		n, err := store.Products().CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewConflict("category", "la categoría tiene productos asociados")
		}
		return store.Categories().Delete(ctx, id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
