package repository

import (
	"context"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para Order y sus líneas.
// GetByID y GetByNumber cargan Items y Payment; los listados no.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Order, int, error)
}

// PaymentRepository puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
}
