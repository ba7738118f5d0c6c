package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
)

func TestGetSummary_AgregaInventarioMantenimientosYMovimientos(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	cost := decimal.RequireFromString("12.5")

	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Referencia: "A", Existencia: 4, CostoUnitario: &cost}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Referencia: "B", Existencia: 0}))

	ayer := now.Add(-24 * time.Hour)
	manana := now.Add(24 * time.Hour)
	require.NoError(t, store.Maintenances().Create(ctx, &entity.Maintenance{ID: "m1", ProductoID: "p1", Estado: entity.MaintenanceActivo, FechaVencimiento: &ayer}))
	require.NoError(t, store.Maintenances().Create(ctx, &entity.Maintenance{ID: "m2", ProductoID: "p1", Estado: entity.MaintenanceActivo, FechaVencimiento: &manana}))
	require.NoError(t, store.Maintenances().Create(ctx, &entity.Maintenance{ID: "m3", ProductoID: "p1", Estado: entity.MaintenanceCompletado}))

	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "v1", ProductoID: "p1", Tipo: entity.MovementIngreso, Cantidad: 5, Fecha: now.Add(-time.Hour)}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "v2", ProductoID: "p1", Tipo: entity.MovementEgreso, Cantidad: 1, Fecha: now.AddDate(0, -1, 0)}))

	uc := NewDashboardUseCase(store.Products(), store.Maintenances(), store.Movements())
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Productos)
	assert.Equal(t, 4, out.UnidadesEnStock)
	assert.True(t, out.ValorInventario.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, out.ProductosSinStock)
	assert.Equal(t, 2, out.MantenimientosActivos)
	assert.Equal(t, 1, out.MantenimientosVencidos)
	assert.Equal(t, map[string]int{entity.MovementIngreso: 1, entity.MovementEgreso: 0}, out.MovimientosMes)
	assert.Equal(t, "Febrero 2026", out.MesLabel)
}
