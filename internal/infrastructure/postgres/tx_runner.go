package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ ports.UnitOfWork = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Do inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Do(ctx context.Context, fn func(store repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Store agrupa los repositorios sobre un mismo Querier.
type Store struct {
	users      *UserRepo
	products   *ProductRepo
	categories *CategoryRepo
	orders     *OrderRepo
	payments   *PaymentRepo
	coupons    *CouponRepo
}

var _ repository.Store = (*Store)(nil)

// NewStore construye los repositorios sobre q (pool o tx).
func NewStore(q Querier) *Store {
	return &Store{
		users:      NewUserRepository(q),
		products:   NewProductRepository(q),
		categories: NewCategoryRepository(q),
		orders:     NewOrderRepository(q),
		payments:   NewPaymentRepository(q),
		coupons:    NewCouponRepository(q),
	}
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Products() repository.ProductRepository   { return s.products }
func (s *Store) Categories() repository.CategoryRepository { return s.categories }
func (s *Store) Orders() repository.OrderRepository       { return s.orders }
func (s *Store) Payments() repository.PaymentRepository   { return s.payments }
func (s *Store) Coupons() repository.CouponRepository     { return s.coupons }
