package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

var hundred = decimal.NewFromInt(100)

// CouponUseCase alta, consulta y validación de cupones.
type CouponUseCase struct {
	uow ports.UnitOfWork
	now func() time.Time
}

// NewCouponUseCase construye el caso de uso.
func NewCouponUseCase(uow ports.UnitOfWork) *CouponUseCase {
	return &CouponUseCase{uow: uow, now: time.Now}
}

// Create registra un cupón. Exactamente uno de porcentaje (0-100] o monto fijo (> 0).
func (uc *CouponUseCase) Create(ctx context.Context, in dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	code := normalizeCouponCode(in.Code)
	if code == "" {
		return nil, domain.NewValidation("code es requerido")
	}
	hasPct := !in.DiscountPercentage.IsZero()
	hasAmt := !in.DiscountAmount.IsZero()
	if hasPct == hasAmt {
		return nil, domain.NewValidation("indique discount_percentage o discount_amount, no ambos")
	}
	if hasPct && (!in.DiscountPercentage.IsPositive() || in.DiscountPercentage.GreaterThan(hundred)) {
		return nil, domain.NewValidation("discount_percentage debe estar entre 0 y 100")
	}
	if hasAmt && (!in.DiscountAmount.IsPositive() || in.DiscountAmount.GreaterThan(entity.MaxAmount)) {
		return nil, domain.NewValidation("discount_amount debe ser positivo y no superar 9999999999.99")
	}
	if in.MinPurchaseAmount.IsNegative() || in.MinPurchaseAmount.GreaterThan(entity.MaxAmount) {
		return nil, domain.NewValidation("min_purchase_amount fuera de rango")
	}
	if in.MaxUses < 0 || in.MaxUses > entity.MaxQuantity {
		return nil, domain.NewValidation("max_uses fuera de rango")
	}
	if !in.ValidUntil.After(in.ValidFrom) {
		return nil, domain.NewValidation("valid_until debe ser posterior a valid_from")
	}

	var coupon *entity.Coupon
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		existing, err := store.Coupons().GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicate("coupon", "el código de cupón ya existe")
		}
		now := uc.now().UTC()
		coupon = &entity.Coupon{
			ID:                 uuid.New().String(),
			Code:               code,
			DiscountPercentage: in.DiscountPercentage,
			DiscountAmount:     in.DiscountAmount,
			MaxUses:            in.MaxUses,
			MinPurchaseAmount:  in.MinPurchaseAmount,
			IsActive:           true,
			ValidFrom:          in.ValidFrom.UTC(),
			ValidUntil:         in.ValidUntil.UTC(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return store.Coupons().Create(ctx, coupon)
	})
	if err != nil {
		return nil, err
	}
	return uc.toCouponResponse(coupon), nil
}

// ListActive cupones activos y vigentes ahora.
func (uc *CouponUseCase) ListActive(ctx context.Context, p pagination.Params) (*dto.CouponListResponse, error) {
	var (
		list  []*entity.Coupon
		total int
	)
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		list, total, err = store.Coupons().ListActive(ctx, uc.now().UTC(), p.Limit(), p.Offset())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CouponResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toCouponResponse(c))
	}
	return &dto.CouponListResponse{Items: items, Page: pagination.NewMeta(total, p)}, nil
}

// Validate verifica que el cupón se pueda usar sobre amount y calcula el descuento.
// No consume usos.
func (uc *CouponUseCase) Validate(ctx context.Context, in dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidation("amount debe ser positivo")
	}
	code := normalizeCouponCode(in.Code)
	var coupon *entity.Coupon
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		coupon, err = store.Coupons().GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if coupon == nil {
			return domain.ErrCouponNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	switch {
	case !coupon.IsActive:
		return nil, domain.NewValidation("el cupón no está activo")
	case !coupon.InWindow(now):
		return nil, domain.NewValidation("el cupón no está vigente")
	case !coupon.HasUsesLeft():
		return nil, domain.NewValidation("el cupón alcanzó su máximo de usos")
	case in.Amount.LessThan(coupon.MinPurchaseAmount):
		return nil, domain.NewValidation("el monto no alcanza la compra mínima del cupón")
	}

	discount := coupon.Discount(in.Amount)
	return &dto.ValidateCouponResponse{
		Code:        coupon.Code,
		Valid:       true,
		Discount:    discount,
		FinalAmount: in.Amount.Sub(discount).Round(2),
	}, nil
}

func (uc *CouponUseCase) toCouponResponse(c *entity.Coupon) *dto.CouponResponse {
	return &dto.CouponResponse{
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		DiscountAmount:     c.DiscountAmount,
		MinPurchaseAmount:  c.MinPurchaseAmount,
		MaxUses:            c.MaxUses,
		CurrentUses:        c.CurrentUses,
		Status:             c.Status(uc.now().UTC()),
		ValidFrom:          c.ValidFrom,
		ValidUntil:         c.ValidUntil,
	}
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
