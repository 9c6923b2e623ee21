package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*productRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
)

type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	if err := r.checkSKU(product); err != nil {
		return err
	}
	p := *product
	r.st.products[p.ID] = &p
	return nil
}

func (r *productRepo) checkSKU(product *entity.Product) error {
	for _, p := range r.st.products {
		if p.ID != product.ID && p.SKU == product.SKU {
			return domain.ErrSKUAlreadyExists
		}
	}
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.st.products[product.ID]; !ok {
		return nil
	}
	if err := r.checkSKU(product); err != nil {
		return err
	}
	p := *product
	r.st.products[p.ID] = &p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	delete(r.st.products, id)
	return nil
}

func (r *productRepo) filter(match func(p *entity.Product) bool, limit, offset int) ([]*entity.Product, int, error) {
	var found []*entity.Product
	for _, p := range r.st.products {
		if match(p) {
			cp := *p
			found = append(found, &cp)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].ID < found[j].ID
		}
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return page(found, limit, offset), len(found), nil
}

func (r *productRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Product, int, error) {
	return r.filter(func(p *entity.Product) bool {
		return p.Status == entity.ProductStatusActive
	}, limit, offset)
}

func (r *productRepo) Search(_ context.Context, query string, limit, offset int) ([]*entity.Product, int, error) {
	q := strings.ToLower(query)
	return r.filter(func(p *entity.Product) bool {
		return containsAny(q, p.Name, p.Description)
	}, limit, offset)
}

func (r *productRepo) ListByCategory(_ context.Context, categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	return r.filter(func(p *entity.Product) bool {
		return p.CategoryID == categoryID
	}, limit, offset)
}

func (r *productRepo) ListLowStock(_ context.Context, threshold, limit, offset int) ([]*entity.Product, int, error) {
	return r.filter(func(p *entity.Product) bool {
		return p.Stock <= threshold && p.Status == entity.ProductStatusActive
	}, limit, offset)
}

func (r *productRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, p := range r.st.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type categoryRepo struct {
	st *state
}

func (r *categoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range r.st.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return domain.NewDuplicate("category", "ya existe una categoría con ese nombre")
		}
	}
	c := *category
	r.st.categories[c.ID] = &c
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.st.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.st.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, int, error) {
	list := make([]*entity.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), len(list), nil
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	delete(r.st.categories, id)
	return nil
}
