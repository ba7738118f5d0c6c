package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /dashboard/resumen.
type DashboardSummaryDTO struct {
	// Inventario
	Productos         int             `json:"productos"`
	UnidadesEnStock   int             `json:"unidadesEnStock"`
	ValorInventario   decimal.Decimal `json:"valorInventario"`
	ProductosSinStock int             `json:"productosSinStock"`

	// Mantenimientos
	MantenimientosActivos  int `json:"mantenimientosActivos"`
	MantenimientosVencidos int `json:"mantenimientosVencidos"`

	// Movimientos del mes en curso por tipo
	MovimientosMes map[string]int `json:"movimientosMes"`

	MesLabel string `json:"mesLabel"` // ej: "Febrero 2026"
}
