package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// CouponHandler cupones de descuento.
type CouponHandler struct {
	uc     *usecase.CouponUseCase
	limits pagination.Limits
}

// NewCouponHandler construye el handler.
func NewCouponHandler(uc *usecase.CouponUseCase, limits pagination.Limits) *CouponHandler {
	return &CouponHandler{uc: uc, limits: limits}
}

// List godoc
// @Summary      Cupones vigentes
// @Tags         coupons
// @Produce      json
// @Param        page       query  int  false  "Página"  default(1)
// @Param        page_size  query  int  false  "Tamaño"  default(20)
// @Success      200  {object}  dto.CouponListResponse
// @Router       /api/v1/coupons [get]
func (h *CouponHandler) List(c *fiber.Ctx) error {
	p, err := pageParams(c, h.limits)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListActive(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar cupón
// @Description  Calcula el descuento aplicable sobre amount sin consumir el cupón.
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateCouponRequest  true  "code, amount"
// @Success      200   {object}  dto.ValidateCouponResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/coupons/validate [post]
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateCouponRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Validate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cupón
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCouponRequest  true  "Datos del cupón"
// @Success      201   {object}  dto.CouponResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/coupons [post]
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCouponRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
