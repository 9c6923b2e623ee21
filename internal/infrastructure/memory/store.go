// Package memory implementa los repositorios en memoria con semántica transaccional
// (copia en Do, descarte ante error). Lo usan los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var _ ports.UnitOfWork = (*Store)(nil)

// Store guarda todas las entidades y serializa las unidades de trabajo.
type Store struct {
	mu    sync.Mutex
	state *state
	// Commits cuenta las unidades de trabajo confirmadas.
	Commits int
}

type state struct {
	users      map[string]*entity.User
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	orders     map[string]*entity.Order
	payments   map[string]*entity.Payment
	coupons    map[string]*entity.Coupon
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func newState() *state {
	return &state{
		users:      map[string]*entity.User{},
		products:   map[string]*entity.Product{},
		categories: map[string]*entity.Category{},
		orders:     map[string]*entity.Order{},
		payments:   map[string]*entity.Payment{},
		coupons:    map[string]*entity.Coupon{},
	}
}

// Do ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (s *Store) Do(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&txStore{st: work}); err != nil {
		return err
	}
	s.state = work
	s.Commits++
	return nil
}

type txStore struct {
	st *state
}

func (t *txStore) Users() repository.UserRepository         { return &userRepo{st: t.st} }
func (t *txStore) Products() repository.ProductRepository   { return &productRepo{st: t.st} }
func (t *txStore) Categories() repository.CategoryRepository { return &categoryRepo{st: t.st} }
func (t *txStore) Orders() repository.OrderRepository       { return &orderRepo{st: t.st} }
func (t *txStore) Payments() repository.PaymentRepository   { return &paymentRepo{st: t.st} }
func (t *txStore) Coupons() repository.CouponRepository     { return &couponRepo{st: t.st} }

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.categories {
		cat := *v
		c.categories[k] = &cat
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.payments {
		p := *v
		c.payments[k] = &p
	}
	for k, v := range s.coupons {
		cp := *v
		c.coupons[k] = &cp
	}
	return c
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.Payment = nil
	return &cp
}

// page recorta items a [offset, offset+limit).
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
