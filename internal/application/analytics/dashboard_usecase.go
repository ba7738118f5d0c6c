// Package analytics contiene el caso de uso del resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de inventario, mantenimientos y movimientos del mes.
//
// Fuente de datos: repositorios de productos, mantenimientos y movimientos (consultas read-only).
type DashboardUseCase struct {
	products     repository.ProductRepository
	maintenances repository.MaintenanceRepository
	movements    repository.MovementRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	maintenances repository.MaintenanceRepository,
	movements repository.MovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, maintenances: maintenances, movements: movements, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. Summary()               → productos, unidades, valor, sin stock
//  2. CountActive(now)        → activos y vencidos
//  3. CountByTipoSince(mes)   → movimientos del mes por tipo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las 3 consultas ───────────────────────────
	type summaryResult struct {
		summary entity.ProductSummary
		err     error
	}
	type activeResult struct {
		activos, vencidos int
		err               error
	}
	type movementsResult struct {
		porTipo map[string]int
		err     error
	}

	summaryCh := make(chan summaryResult, 1)
	activeCh := make(chan activeResult, 1)
	movCh := make(chan movementsResult, 1)

	go func() {
		s, err := uc.products.Summary(ctx)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		a, v, err := uc.maintenances.CountActive(ctx, now)
		activeCh <- activeResult{a, v, err}
	}()
	go func() {
		m, err := uc.movements.CountByTipoSince(ctx, monthStart)
		movCh <- movementsResult{m, err}
	}()

	summary := <-summaryCh
	active := <-activeCh
	movs := <-movCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de productos: %w", summary.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: mantenimientos activos: %w", active.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos del mes: %w", movs.err)
	}

	porTipo := map[string]int{entity.MovementIngreso: 0, entity.MovementEgreso: 0}
	for tipo, n := range movs.porTipo {
		porTipo[tipo] = n
	}

	return &dto.DashboardSummaryDTO{
		Productos:              summary.summary.Productos,
		UnidadesEnStock:        summary.summary.Unidades,
		ValorInventario:        summary.summary.ValorInventario.Round(2),
		ProductosSinStock:      summary.summary.SinStock,
		MantenimientosActivos:  active.activos,
		MantenimientosVencidos: active.vencidos,
		MovimientosMes:         porTipo,
		MesLabel:               monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
