package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCouponRequest entrada para crear un cupón. Se usa porcentaje o monto fijo.
type CreateCouponRequest struct {
	Code               string          `json:"code" validate:"required,min=3,max=50"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	MaxUses            int             `json:"max_uses" validate:"min=0"`
	MinPurchaseAmount  decimal.Decimal `json:"min_purchase_amount"`
	ValidFrom          time.Time       `json:"valid_from" validate:"required"`
	ValidUntil         time.Time       `json:"valid_until" validate:"required"`
}

// CouponResponse salida de un cupón.
type CouponResponse struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	MinPurchaseAmount  decimal.Decimal `json:"min_purchase_amount"`
	MaxUses            int             `json:"max_uses"`
	CurrentUses        int             `json:"current_uses"`
	Status             string          `json:"status"`
	ValidFrom          time.Time       `json:"valid_from"`
	ValidUntil         time.Time       `json:"valid_until"`
}

// CouponListResponse lista paginada de cupones.
type CouponListResponse struct {
	Items []CouponResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ValidateCouponRequest código y monto de la compra.
type ValidateCouponRequest struct {
	Code   string          `json:"code" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// ValidateCouponResponse descuento aplicable y monto final.
type ValidateCouponResponse struct {
	Code        string          `json:"code"`
	Valid       bool            `json:"valid"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}
