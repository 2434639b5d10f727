package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeInvalidContentType = "INVALID_CONTENT_TYPE"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeConflict           = "CONFLICT"
	CodeUpstream           = "UPSTREAM"
	CodeTimeout            = "TIMEOUT"
	CodeInternal           = "INTERNAL"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// invalidBody respuesta para cuerpos que no se pudieron decodificar.
func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// unauthorized respuesta cuando no hay usuario autenticado en el contexto.
func unauthorized(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "token inválido")
}

// writeError traduce errores de dominio a la respuesta HTTP correspondiente.
// Los errores no clasificados se registran y se devuelven como INTERNAL sin detalle.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	msg := err.Error()
	var se *inventory.SelectionError
	if errors.As(err, &se) {
		msg = se.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, msg)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, msg)
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, msg)
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return errorJSON(c, fiber.StatusGatewayTimeout, CodeTimeout, "tiempo de espera agotado")
	case errors.Is(err, domain.ErrUpstream):
		return errorJSON(c, fiber.StatusBadGateway, CodeUpstream, msg)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
}
