package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/maintenance"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

const entityMantenimiento = "mantenimiento"

// MaintenanceHandler maneja los mantenimientos de equipos.
type MaintenanceHandler struct {
	uc    *maintenance.UseCase
	audit auditRecorder
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase, rec auditRecorder) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc, audit: rec}
}

// Create godoc
// @Summary      Programar mantenimiento (descuenta una unidad del producto si queda activo)
// @Tags         mantenimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaintenanceRequest  true  "Datos del mantenimiento"
// @Success      201   {object}  dto.SuccessResponse{data=dto.CreateMaintenanceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/mantenimientos [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditCreate, entityMantenimiento, out.Mantenimiento.ID, fiber.Map{
		"productoId": out.Mantenimiento.ProductoID,
		"sinStock":   out.SinStock,
	})
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar mantenimientos
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      json
// @Param        estado      query  string  false  "activo | completado | cancelado"
// @Param        productoId  query  string  false  "ID del producto"
// @Param        vencidos    query  bool    false  "Solo activos con fecha programada vencida"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SuccessResponse{data=dto.MaintenanceListResponse}
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/mantenimientos [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	var in dto.MaintenanceListRequest
	if err := c.QueryParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	out, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.MaintenanceListResponse, error) {
		return h.uc.List(ctx, in)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener mantenimiento
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del mantenimiento"
// @Success      200  {object}  dto.SuccessResponse{data=dto.MaintenanceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mantenimientos/{id} [get]
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := withTimeout(c, LookupTimeout, func(ctx context.Context) (*dto.MaintenanceResponse, error) {
		return h.uc.GetByID(ctx, id)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar mantenimiento (estado solo avanza por transiciones válidas)
// @Tags         mantenimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del mantenimiento"
// @Param        body  body  dto.UpdateMaintenanceRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse{data=dto.MaintenanceResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/mantenimientos/{id} [put]
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditModify, entityMantenimiento, out.ID, in)
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar mantenimiento (devuelve la unidad si estaba activo)
// @Tags         mantenimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del mantenimiento"
// @Success      200  {object}  dto.SuccessResponse{data=dto.MaintenanceResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mantenimientos/{id} [delete]
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditDelete, entityMantenimiento, id, fiber.Map{"productoId": out.ProductoID})
	return c.JSON(dto.OK(out))
}
