package repository

import (
	"context"
	"time"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
)

// CouponRepository puerto de persistencia para Coupon.
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	// ListActive cupones activos cuya ventana contiene now.
	ListActive(ctx context.Context, now time.Time, limit, offset int) ([]*entity.Coupon, int, error)
}
