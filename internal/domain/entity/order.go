package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de Order. No hay transiciones implementadas; solo se consultan.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// IsValidOrderStatus indica si s es un estado de orden conocido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order pedido de un usuario con sus líneas y pago (si existe).
type Order struct {
	ID              string
	UserID          string
	OrderNumber     string // único
	Status          string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Notes           string
	Items           []OrderItem
	Payment         *Payment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea de una orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderNumberPrefix prefijo de todo número de orden.
const OrderNumberPrefix = "ORD-"

// GenerateOrderNumber formato ORD-<unix>-<sufijo aleatorio de 8 caracteres>.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s%d-%s", OrderNumberPrefix, now.Unix(), suffix)
}
