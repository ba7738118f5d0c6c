package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/application/usecase"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

const entityProducto = "producto"

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	history *history.Service
	audit   auditRecorder
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, hist *history.Service, rec auditRecorder) *ProductHandler {
	return &ProductHandler{uc: uc, history: hist, audit: rec}
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditCreate, entityProducto, out.ID, fiber.Map{"referencia": out.Referencia})
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := withTimeout(c, LookupTimeout, func(ctx context.Context) (*dto.ProductResponse, error) {
		return h.uc.GetByID(ctx, id)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByReferencia godoc
// @Summary      Obtener producto por referencia (sin distinguir mayúsculas)
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        referencia  path  string  true  "Referencia"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/referencia/{referencia} [get]
func (h *ProductHandler) GetByReferencia(c *fiber.Ctx) error {
	ref := param(c, "referencia")
	out, err := withTimeout(c, LookupTimeout, func(ctx context.Context) (*dto.ProductResponse, error) {
		return h.uc.GetByReferencia(ctx, ref)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        categoria  query  string  false  "Categoría"
// @Param        equipo     query  string  false  "Equipo"
// @Param        q          query  string  false  "Texto libre (referencia, nombre, detalle)"
// @Param        sinStock   query  bool    false  "Solo productos sin existencia"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductListResponse}
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := c.QueryParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros de consulta inválidos")
	}
	out, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.ProductListResponse, error) {
		return h.uc.List(ctx, in)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar producto (existencia y costo cambian solo por movimientos)
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar y motivo"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), param(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditModify, entityProducto, out.ID, in)
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar producto sin movimientos ni mantenimientos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := param(c, "id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	recordAudit(h.audit, c, entity.AuditDelete, entityProducto, id, nil)
	return c.JSON(dto.OK(nil))
}

// History godoc
// @Summary      Historial de versiones del producto
// @Tags         historial
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse{data=dto.ProductHistoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/historial/productos/{id} [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id := param(c, "id")
	out, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.ProductHistoryResponse, error) {
		return h.history.List(ctx, id)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(out))
}
