package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/inventory"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// InventoryHandler maneja el libro de movimientos.
type InventoryHandler struct {
	uc    *inventory.RegisterMovementUseCase
	audit auditRecorder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, rec auditRecorder) *InventoryHandler {
	return &InventoryHandler{uc: uc, audit: rec}
}

// RegisterMovement godoc
// @Summary      Registrar ingreso o egreso de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "referencia, tipo (ingreso|egreso), cantidad, costoUnitario?, nota?"
// @Success      201   {object}  dto.SuccessResponse{data=dto.RegisterMovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditCreate, "movimiento", out.Movimiento.ID, fiber.Map{
		"referencia": out.Movimiento.Referencia,
		"tipo":       out.Movimiento.Tipo,
		"cantidad":   out.Movimiento.Cantidad,
	})
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        referencia  query  string  false  "Referencia"
// @Param        tipo        query  string  false  "ingreso | egreso"
// @Param        desde       query  string  false  "AAAA-MM-DD"
// @Param        hasta       query  string  false  "AAAA-MM-DD (incluido)"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SuccessResponse{data=dto.MovementListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	out, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.MovementListResponse, error) {
		return h.uc.ListMovements(ctx, in)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}
