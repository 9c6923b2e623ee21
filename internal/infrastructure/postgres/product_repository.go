package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, stock, sku, category_id, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.SKU, product.CategoryID, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateFor(err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get product", `WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, "get product by sku", `WHERE sku = $1`, sku)
}

func (r *ProductRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, stock = $5, sku = $6,
			category_id = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.SKU, product.CategoryID, product.Status, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateFor(err)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListActive productos con status active.
func (r *ProductRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, int, error) {
	return r.list(ctx, "list active products", `WHERE status = 'active'`, limit, offset)
}

// Search busca por nombre o descripción (ILIKE), cualquier estado.
func (r *ProductRepo) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Product, int, error) {
	return r.list(ctx, "search products", `WHERE name ILIKE $1 OR description ILIKE $1`, limit, offset, likePattern(query))
}

// ListByCategory productos de una categoría, cualquier estado.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	if !validID(categoryID) {
		return []*entity.Product{}, 0, nil
	}
	return r.list(ctx, "list products by category", `WHERE category_id = $1`, limit, offset, categoryID)
}

// ListLowStock productos activos con stock <= threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold, limit, offset int) ([]*entity.Product, int, error) {
	return r.list(ctx, "list low stock", `WHERE status = 'active' AND stock <= $1`, limit, offset, threshold)
}

// CountByCategory cuenta productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if !validID(categoryID) {
		return 0, nil
	}
	n, err := countRows(ctx, r.q, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// list ejecuta count + página ordenada por created_at DESC. Los args del filtro van primero;
// limit y offset se agregan al final.
func (r *ProductRepo) list(ctx context.Context, op, where string, limit, offset int, args ...any) ([]*entity.Product, int, error) {
	total, err := countRows(ctx, r.q, `SELECT COUNT(*) FROM products `+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		productColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	list, err := collectProducts(rows)
	return list, total, err
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU, &p.CategoryID, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
