package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// pageParams lee page/page_size del query string y aplica los límites configurados.
func pageParams(c *fiber.Ctx, limits pagination.Limits) (pagination.Params, error) {
	var in dto.PageRequest
	if err := c.QueryParser(&in); err != nil {
		return pagination.Params{}, &requestError{code: "VALIDATION", message: "parámetros de paginación inválidos"}
	}
	if err := validateStruct(&in); err != nil {
		return pagination.Params{}, err
	}
	return limits.Normalize(in.Page, in.PageSize), nil
}
