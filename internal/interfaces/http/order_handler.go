package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// OrderHandler consultas de órdenes.
type OrderHandler struct {
	uc     *usecase.OrderUseCase
	limits pagination.Limits
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, limits pagination.Limits) *OrderHandler {
	return &OrderHandler{uc: uc, limits: limits}
}

// List godoc
// @Summary      Mis órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "Página"  default(1)
// @Param        page_size  query  int  false  "Tamaño"  default(20)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	p, err := pageParams(c, h.limits)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMine(c.UserContext(), GetIdentity(c), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID o número
// @Description  Solo el dueño de la orden o un admin.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID o número de orden (ORD-...)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Órdenes por estado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status     path   string  true   "pending, confirmed, processing, shipped, delivered, cancelled"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/status/{status} [get]
func (h *OrderHandler) ListByStatus(c *fiber.Ctx) error {
	p, err := pageParams(c, h.limits)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByStatus(c.UserContext(), c.Params("status"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
