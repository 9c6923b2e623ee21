package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/ports"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// OrderUseCase consultas de órdenes y pagos. No hay transiciones de estado.
type OrderUseCase struct {
	uow ports.UnitOfWork
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(uow ports.UnitOfWork) *OrderUseCase {
	return &OrderUseCase{uow: uow}
}

// Get devuelve la orden con líneas y pago si el solicitante es dueño o admin.
// ref es el ID o el número de orden (ORD-...).
func (uc *OrderUseCase) Get(ctx context.Context, requester *auth.Identity, ref string) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		orders := store.Orders()
		var err error
		order, err = orders.GetByID(ctx, ref)
		if err != nil {
			return err
		}
		if order == nil && strings.HasPrefix(ref, entity.OrderNumberPrefix) {
			order, err = orders.GetByNumber(ctx, ref)
			if err != nil {
				return err
			}
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !requester.CanActOn(order.UserID) {
			return domain.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListMine órdenes del solicitante, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, requester *auth.Identity, p pagination.Params) (*dto.OrderListResponse, error) {
	if requester == nil {
		return nil, domain.ErrUnauthenticated
	}
	return uc.list(ctx, p, func(orders repository.OrderRepository) ([]*entity.Order, int, error) {
		return orders.ListByUser(ctx, requester.UserID, p.Limit(), p.Offset())
	})
}

// ListByStatus órdenes en un estado dado.
func (uc *OrderUseCase) ListByStatus(ctx context.Context, status string, p pagination.Params) (*dto.OrderListResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.NewValidation("estado de orden inválido")
	}
	return uc.list(ctx, p, func(orders repository.OrderRepository) ([]*entity.Order, int, error) {
		return orders.ListByStatus(ctx, status, p.Limit(), p.Offset())
	})
}

func (uc *OrderUseCase) list(ctx context.Context, p pagination.Params, fetch func(repository.OrderRepository) ([]*entity.Order, int, error)) (*dto.OrderListResponse, error) {
	var (
		list  []*entity.Order
		total int
	)
	err := uc.uow.Do(ctx, func(store repository.Store) error {
		var err error
		list, total, err = fetch(store.Orders())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: pagination.NewMeta(total, p)}, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	if o.Payment != nil {
		out.Payment = &dto.PaymentResponse{
			ID:            o.Payment.ID,
			Amount:        o.Payment.Amount,
			Status:        o.Payment.Status,
			Method:        o.Payment.Method,
			TransactionID: o.Payment.TransactionID,
			CreatedAt:     o.Payment.CreatedAt,
		}
	}
	return out
}
