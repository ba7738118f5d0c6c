package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

// MsgInvalidCredentials mensaje único para cualquier fallo de login.
const MsgInvalidCredentials = "Credenciales inválidas"

// MsgDuplicateReference mensaje de referencia repetida.
const MsgDuplicateReference = "La referencia ya existe"

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: message})
}

// writeError traduce errores de dominio a HTTP. Los errores desconocidos se devuelven
// tal cual para que ErrorHandler los registre y responda 500.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", ve.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusBadRequest, "DUPLICATE", MsgDuplicateReference)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusBadRequest, "EMAIL_EXISTS", "El email ya está registrado")
	case errors.Is(err, domain.ErrInsufficientStock):
		return errorJSON(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "Stock insuficiente")
	case errors.Is(err, domain.ErrInvalidTransition):
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_TRANSITION", "Transición de estado no permitida")
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusBadRequest, "CONFLICT", "El producto tiene movimientos o mantenimientos asociados")
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "Recurso no encontrado")
	case errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "Usuario no encontrado")
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", MsgInvalidCredentials)
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", "Acceso denegado")
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return errorJSON(c, fiber.StatusServiceUnavailable, "TIMEOUT", "El servicio tardó demasiado; intente de nuevo")
	}
	return err
}

// ErrorHandler manejador de errores de Fiber: *fiber.Error conserva su status, el resto es 500.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return errorJSON(c, fe.Code, "HTTP_ERROR", fe.Message)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "Error interno del servidor")
	}
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
