package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Product.
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// IsValidProductStatus indica si s es un estado de producto conocido.
func IsValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product representa un producto del catálogo.
// Price > 0 con máximo 2 decimales; Stock >= 0.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	SKU         string // único global
	CategoryID  string
	Status      string // active, inactive, discontinued
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Topes de las columnas NUMERIC(12,2) e INTEGER.
var MaxAmount = decimal.RequireFromString("9999999999.99")

const MaxQuantity = math.MaxInt32

// ValidPrice verifica precio positivo, con a lo sumo 2 decimales y dentro de MaxAmount.
func ValidPrice(p decimal.Decimal) bool {
	if !p.IsPositive() || p.GreaterThan(MaxAmount) {
		return false
	}
	return p.Equal(p.Truncate(2))
}

// ValidStock verifica 0 <= s <= MaxQuantity.
func ValidStock(s int) bool {
	return s >= 0 && s <= MaxQuantity
}
