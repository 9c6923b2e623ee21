package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/suplegear-api/internal/domain"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repos funcionan con cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// duplicateFor traduce el índice único violado al error de dominio.
func duplicateFor(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.ErrDuplicate
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return domain.ErrEmailAlreadyExists
	case "users_username_key":
		return domain.ErrUsernameTaken
	case "products_sku_key":
		return domain.ErrSKUAlreadyExists
	case "categories_name_key":
		return domain.NewDuplicate("category", "ya existe una categoría con ese nombre")
	case "orders_order_number_key":
		return domain.NewDuplicate("order", "número de orden duplicado")
	case "payments_order_id_key", "payments_transaction_id_key":
		return domain.NewDuplicate("payment", "el pago ya existe")
	case "coupons_code_key":
		return domain.NewDuplicate("coupon", "el código de cupón ya existe")
	}
	return domain.ErrDuplicate
}

// likePattern arma un patrón ILIKE "%q%" escapando los comodines de q.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// validID indica si id tiene forma de UUID. Las columnas id son UUID y Postgres rechaza
// cualquier otro texto con 22P02; un id mal formado se trata como inexistente.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// nullIfEmpty mapea "" a NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func countRows(ctx context.Context, q Querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
