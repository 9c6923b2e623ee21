package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository   = (*orderRepo)(nil)
	_ repository.PaymentRepository = (*paymentRepo)(nil)
	_ repository.CouponRepository  = (*couponRepo)(nil)
)

type orderRepo struct {
	st *state
}

func (r *orderRepo) Create(_ context.Context, order *entity.Order) error {
	for _, o := range r.st.orders {
		if o.OrderNumber == order.OrderNumber {
			return domain.NewDuplicate("order", "número de orden duplicado")
		}
	}
	r.st.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *orderRepo) withPayment(o *entity.Order) *entity.Order {
	cp := copyOrder(o)
	for _, p := range r.st.payments {
		if p.OrderID == o.ID {
			pay := *p
			cp.Payment = &pay
			break
		}
	}
	return cp
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, nil
	}
	return r.withPayment(o), nil
}

func (r *orderRepo) GetByNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range r.st.orders {
		if o.OrderNumber == orderNumber {
			return r.withPayment(o), nil
		}
	}
	return nil, nil
}

func (r *orderRepo) list(match func(o *entity.Order) bool, limit, offset int) ([]*entity.Order, int, error) {
	var found []*entity.Order
	for _, o := range r.st.orders {
		if match(o) {
			cp := copyOrder(o)
			cp.Items = nil
			found = append(found, cp)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].ID < found[j].ID
		}
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return page(found, limit, offset), len(found), nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Order, int, error) {
	return r.list(func(o *entity.Order) bool { return o.UserID == userID }, limit, offset)
}

func (r *orderRepo) ListByStatus(_ context.Context, status string, limit, offset int) ([]*entity.Order, int, error) {
	return r.list(func(o *entity.Order) bool { return o.Status == status }, limit, offset)
}

type paymentRepo struct {
	st *state
}

func (r *paymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	for _, p := range r.st.payments {
		if p.OrderID == payment.OrderID {
			return domain.NewDuplicate("payment", "la orden ya tiene un pago")
		}
	}
	p := *payment
	r.st.payments[p.ID] = &p
	return nil
}

func (r *paymentRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Payment, error) {
	for _, p := range r.st.payments {
		if p.OrderID == orderID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}


type couponRepo struct {
	st *state
}

func (r *couponRepo) Create(_ context.Context, coupon *entity.Coupon) error {
	for _, c := range r.st.coupons {
		if strings.EqualFold(c.Code, coupon.Code) {
			return domain.NewDuplicate("coupon", "el código de cupón ya existe")
		}
	}
	c := *coupon
	r.st.coupons[c.ID] = &c
	return nil
}

func (r *couponRepo) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	for _, c := range r.st.coupons {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *couponRepo) ListActive(_ context.Context, now time.Time, limit, offset int) ([]*entity.Coupon, int, error) {
	var found []*entity.Coupon
	for _, c := range r.st.coupons {
		if c.IsActive && c.InWindow(now) {
			cp := *c
			found = append(found, &cp)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Code < found[j].Code })
	return page(found, limit, offset), len(found), nil
}
