package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para autorizar.
// Lo implementa *authz.Enforcer.
type permissionChecker interface {
	Allowed(role, resource, action string) bool
}

// RequirePermission devuelve un middleware Fiber que exige la capacidad (resource, action)
// al rol del token. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol.
//   - 403 Forbidden    → el rol no tiene la capacidad.
func RequirePermission(checker permissionChecker, resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if !checker.Allowed(role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permiso para esta operación",
			})
		}
		return c.Next()
	}
}
