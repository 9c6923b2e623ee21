package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Payment.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment pago asociado a una orden (uno por orden).
type Payment struct {
	ID            string
	OrderID       string
	Amount        decimal.Decimal
	Status        string
	Method        string
	TransactionID string // opcional, id de la pasarela
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
