package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/romero-panificados/inventario-api/internal/application/analytics"
	"github.com/romero-panificados/inventario-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de inventario, mantenimientos y movimientos del mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse{data=dto.DashboardSummaryDTO}
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
		return h.uc.GetSummary(ctx)
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK(summary))
}
