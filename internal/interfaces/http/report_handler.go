package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/internal/application/report"
)

// ReportHandler descarga los reportes en PDF.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte PDF de existencias y valorización
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reportes/inventario.pdf [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	f, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*report.File, error) {
		return h.uc.Inventory(ctx)
	})
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, f)
}

// Movements godoc
// @Summary      Reporte PDF del libro de movimientos
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        desde       query  string  false  "AAAA-MM-DD"
// @Param        hasta       query  string  false  "AAAA-MM-DD (incluido)"
// @Param        referencia  query  string  false  "Referencia"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/movimientos.pdf [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	desde, hasta, ref := query(c, "desde"), query(c, "hasta"), query(c, "referencia")
	f, err := withTimeout(c, ListTimeout, func(ctx context.Context) (*report.File, error) {
		return h.uc.Movements(ctx, desde, hasta, ref)
	})
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, f)
}

func sendPDF(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	return c.Send(f.Content)
}
