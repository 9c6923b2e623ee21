package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de Coupon.
const (
	CouponStatusActive   = "active"
	CouponStatusExpired  = "expired"
	CouponStatusDisabled = "disabled"
)

// Coupon cupón de descuento. Usa porcentaje o monto fijo (el que no sea cero).
// MaxUses = 0 significa usos ilimitados; MinPurchaseAmount = 0 sin mínimo.
type Coupon struct {
	ID                 string
	Code               string // único
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	MaxUses            int
	CurrentUses        int
	MinPurchaseAmount  decimal.Decimal
	IsActive           bool
	ValidFrom          time.Time
	ValidUntil         time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Status devuelve el estado del cupón en el instante now.
func (c *Coupon) Status(now time.Time) string {
	if !c.IsActive {
		return CouponStatusDisabled
	}
	if now.After(c.ValidUntil) {
		return CouponStatusExpired
	}
	return CouponStatusActive
}

// InWindow indica si now está dentro de [ValidFrom, ValidUntil].
func (c *Coupon) InWindow(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// HasUsesLeft indica si quedan usos disponibles.
func (c *Coupon) HasUsesLeft() bool {
	return c.MaxUses == 0 || c.CurrentUses < c.MaxUses
}

// Discount calcula el descuento sobre amount, con tope en amount y redondeo a 2 decimales.
func (c *Coupon) Discount(amount decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	if c.DiscountPercentage.IsPositive() {
		d = amount.Mul(c.DiscountPercentage).Div(decimal.NewFromInt(100))
	} else {
		d = c.DiscountAmount
	}
	if d.GreaterThan(amount) {
		d = amount
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d.Round(2)
}
