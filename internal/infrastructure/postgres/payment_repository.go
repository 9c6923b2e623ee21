package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, order_id, amount, status, payment_method, transaction_id, created_at, updated_at`

// PaymentRepo pagos (uno por orden).
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OrderID, p.Amount, p.Status, p.Method, nullIfEmpty(p.TransactionID), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateFor(err)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	if !validID(orderID) {
		return nil, nil
	}
	return r.findOne(ctx, "get payment by order", `WHERE order_id = $1`, orderID)
}

func (r *PaymentRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.Payment, error) {
	var (
		p     entity.Payment
		txnID *string
	)
	err := r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments `+where, arg).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.Status, &p.Method, &txnID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if txnID != nil {
		p.TransactionID = *txnID
	}
	return &p, nil
}
