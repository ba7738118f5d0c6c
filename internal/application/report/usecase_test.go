package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) InventoryPDF(_ context.Context, r InventoryReport) ([]byte, error) {
	args := m.Called(r)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockGenerator) MovementsPDF(_ context.Context, r MovementReport) ([]byte, error) {
	args := m.Called(r)
	return args.Get(0).([]byte), args.Error(1)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestInventory_CalculaTotalesYNombre(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Referencia: "A", Existencia: 3, CostoUnitario: dec("10.50")}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Referencia: "B", Existencia: 2}))

	gen := &mockGenerator{}
	gen.On("InventoryPDF", mock.MatchedBy(func(r InventoryReport) bool {
		return len(r.Productos) == 2 && r.TotalUnidades == 5 && r.ValorTotal.Equal(decimal.RequireFromString("31.5"))
	})).Return([]byte("%PDF-1.3"), nil)

	uc := NewUseCase(store.Products(), store.Movements(), gen)
	uc.now = func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) }

	f, err := uc.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reporte-inventario-2026-05-04.pdf", f.Name)
	gen.AssertExpectations(t)
}

func TestMovements_FiltraPorReferenciaYFecha(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	day := time.Date(2026, 5, 3, 15, 0, 0, 0, time.UTC)
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "1", Referencia: "REF-001", Tipo: entity.MovementIngreso, Cantidad: 5, CostoTotal: dec("500"), Fecha: day}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "2", Referencia: "REF-001", Tipo: entity.MovementEgreso, Cantidad: 2, Fecha: day}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "3", Referencia: "REF-002", Tipo: entity.MovementEgreso, Cantidad: 1, Fecha: day}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ID: "4", Referencia: "REF-001", Tipo: entity.MovementEgreso, Cantidad: 9, Fecha: day.AddDate(0, 0, -5)}))

	gen := &mockGenerator{}
	gen.On("MovementsPDF", mock.MatchedBy(func(r MovementReport) bool {
		ing, egr := r.Totales[entity.MovementIngreso], r.Totales[entity.MovementEgreso]
		return len(r.Movimientos) == 2 && ing.Unidades == 5 && ing.Costo.Equal(decimal.NewFromInt(500)) &&
			egr.Movimientos == 1 && egr.Costo.IsZero()
	})).Return([]byte("%PDF-1.3"), nil)

	uc := NewUseCase(store.Products(), store.Movements(), gen)
	uc.now = func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) }

	f, err := uc.Movements(ctx, "2026-05-03", "2026-05-03", "ref-001")
	require.NoError(t, err)
	assert.Equal(t, "reporte-movimientos-ref-001-2026-05-04.pdf", f.Name)
	gen.AssertExpectations(t)
}

func TestMovements_FechaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store.Products(), store.Movements(), &mockGenerator{})
	_, err := uc.Movements(context.Background(), "03/05/2026", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
