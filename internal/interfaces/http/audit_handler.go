package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/application/dto"
)

// AuditHandler consulta el registro de auditoría.
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        usuario  query  string  false  "ID del usuario"
// @Param        accion   query  string  false  "CREATE | MODIFY | DELETE | LOGIN | LOGOUT | OTHER"
// @Param        entidad  query  string  false  "Entidad"
// @Param        desde    query  string  false  "AAAA-MM-DD"
// @Param        hasta    query  string  false  "AAAA-MM-DD (incluido)"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SuccessResponse{data=dto.AuditListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auditoria [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := c.QueryParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	out, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.AuditListResponse, error) {
		return h.uc.List(ctx, in)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}
