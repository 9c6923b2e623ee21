package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCoupon_DescuentoPorcentaje(t *testing.T) {
	c := &Coupon{DiscountPercentage: d("15")}
	assert.True(t, d("15.00").Equal(c.Discount(d("100"))))
	assert.True(t, d("3.70").Equal(c.Discount(d("24.65"))), "debe redondear a 2 decimales")
}

func TestCoupon_DescuentoFijoTopadoAlMonto(t *testing.T) {
	c := &Coupon{DiscountAmount: d("50")}
	assert.True(t, d("30").Equal(c.Discount(d("30"))))
	assert.True(t, d("50").Equal(c.Discount(d("80"))))
}

func TestCoupon_VentanaYUsos(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := &Coupon{
		IsActive:   true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		MaxUses:    2,
	}
	assert.True(t, c.InWindow(now))
	assert.False(t, c.InWindow(now.Add(2*time.Hour)))
	assert.True(t, c.HasUsesLeft())
	c.CurrentUses = 2
	assert.False(t, c.HasUsesLeft())
	c.MaxUses = 0
	assert.True(t, c.HasUsesLeft(), "MaxUses 0 es ilimitado")

	assert.Equal(t, CouponStatusActive, c.Status(now))
	assert.Equal(t, CouponStatusExpired, c.Status(now.Add(2*time.Hour)))
	c.IsActive = false
	assert.Equal(t, CouponStatusDisabled, c.Status(now))
}
