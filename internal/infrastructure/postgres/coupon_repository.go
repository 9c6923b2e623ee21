package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

const couponColumns = `id, code, discount_percentage, discount_amount, max_uses, current_uses,
	min_purchase_amount, is_active, valid_from, valid_until, created_at, updated_at`

// CouponRepo cupones; el código es único sin distinguir mayúsculas.
type CouponRepo struct {
	q Querier
}

func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

func (r *CouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO coupons (`+couponColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.Code, c.DiscountPercentage, c.DiscountAmount, c.MaxUses, c.CurrentUses,
		c.MinPurchaseAmount, c.IsActive, c.ValidFrom, c.ValidUntil, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateFor(err)
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	c, err := scanCoupon(r.q.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE UPPER(code) = UPPER($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

// ListActive cupones activos con now dentro de [valid_from, valid_until], por código.
func (r *CouponRepo) ListActive(ctx context.Context, now time.Time, limit, offset int) ([]*entity.Coupon, int, error) {
	const where = `WHERE is_active AND valid_from <= $1 AND valid_until >= $1`
	total, err := countRows(ctx, r.q, `SELECT COUNT(*) FROM coupons `+where, now)
	if err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons `+where+` ORDER BY code LIMIT $2 OFFSET $3`, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan coupon: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func scanCoupon(row pgx.Row) (*entity.Coupon, error) {
	var c entity.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountPercentage, &c.DiscountAmount, &c.MaxUses, &c.CurrentUses,
		&c.MinPurchaseAmount, &c.IsActive, &c.ValidFrom, &c.ValidUntil, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
