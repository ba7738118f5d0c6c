package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// InventoryReport datos del reporte de existencias.
type InventoryReport struct {
	GeneradoEn    time.Time
	Productos     []*entity.Product
	TotalUnidades int
	ValorTotal    decimal.Decimal
}

// MovementTotals acumulado de un tipo de movimiento.
type MovementTotals struct {
	Movimientos int
	Unidades    int
	Costo       decimal.Decimal
}

// MovementReport datos del reporte de movimientos.
type MovementReport struct {
	GeneradoEn  time.Time
	Desde       *time.Time
	Hasta       *time.Time
	Referencia  string
	Movimientos []*entity.Movement
	Totales     map[string]MovementTotals // por tipo
}

// Generator renderiza los reportes a PDF.
type Generator interface {
	InventoryPDF(ctx context.Context, r InventoryReport) ([]byte, error)
	MovementsPDF(ctx context.Context, r MovementReport) ([]byte, error)
}
