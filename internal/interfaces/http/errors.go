package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/domain"
)

// Códigos de error propios de la capa HTTP.
const (
	codeInvalidBody = "INVALID_BODY"
	codeRateLimited = "RATE_LIMITED"
	codeInternal    = "INTERNAL"
)

// requestError error de entrada detectado antes de llegar al caso de uso.
type requestError struct {
	code    string
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

func statusForKind(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindDuplicateResource, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindInvalidCredentials, domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindInactiveAccount, domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError traduce err a status + ErrorResponse. Los 5xx se registran y no exponen el detalle.
func writeError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: re.code, Message: re.message, Fields: re.fields})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
	}
	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		return c.Status(statusForKind(de.Kind)).JSON(dto.ErrorResponse{Code: de.Kind.String(), Message: de.Message})
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: codeInternal, Message: "error interno del servidor"})
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return domain.KindNotFound.String()
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusTooManyRequests:
		return codeRateLimited
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return domain.KindValidation.String()
	}
	if status >= fiber.StatusInternalServerError {
		return codeInternal
	}
	return "ERROR"
}

// ErrorHandler handler de errores de Fiber: todo error sin responder pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}
