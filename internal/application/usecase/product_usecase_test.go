package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/application/history"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/cache"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
)

func newProductUseCase(store *memory.Store) *ProductUseCase {
	hist := history.NewService(store.Products(), store.History())
	return NewProductUseCase(store.Products(), store.Movements(), store.Maintenances(), store, hist, cache.Nop{})
}

func TestCrearProducto_NormalizaReferenciaYVersiona(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()
	cost := decimal.NewFromInt(100)

	out, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "  ref-001 ", Nombre: "Rodamiento", Existencia: 10, CostoUnitario: &cost})
	require.NoError(t, err)
	assert.Equal(t, "REF-001", out.Referencia)

	versions, err := store.History().ListByProduct(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, entity.ChangeCreado, versions[0].Cambios["nombre"].Tipo)
}

func TestCrearProducto_ReferenciaDuplicada(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "dup-001", Nombre: "A"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "DUP-001", Nombre: "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCrearProducto_Validaciones(t *testing.T) {
	uc := newProductUseCase(memory.NewStore())
	neg := decimal.NewFromInt(-1)
	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin referencia", dto.CreateProductRequest{Nombre: "A"}},
		{"sin nombre", dto.CreateProductRequest{Referencia: "X"}},
		{"existencia negativa", dto.CreateProductRequest{Referencia: "X", Nombre: "A", Existencia: -1}},
		{"costo negativo", dto.CreateProductRequest{Referencia: "X", Nombre: "A", CostoUnitario: &neg}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "u1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestActualizarProducto_CapturaVersion(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "REF-002", Nombre: "Correa", Existencia: 3})
	require.NoError(t, err)
	nombre := "Correa dentada"
	out, err := uc.Update(ctx, "u2", created.ID, dto.UpdateProductRequest{Nombre: &nombre, Motivo: "nombre del fabricante"})
	require.NoError(t, err)
	assert.Equal(t, "Correa dentada", out.Nombre)
	assert.Equal(t, 3, out.Existencia)

	versions, err := store.History().ListByProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[1].Version)
	assert.Equal(t, "u2", versions[1].EditadoPor)
	assert.Equal(t, entity.ChangeModificado, versions[1].Cambios["nombre"].Tipo)
	assert.Len(t, versions[1].Cambios, 1)
}

func TestActualizarProducto_NoExiste(t *testing.T) {
	uc := newProductUseCase(memory.NewStore())
	nombre := "x"
	_, err := uc.Update(context.Background(), "u1", "nope", dto.UpdateProductRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducto_IDNoUUIDEsNoEncontrado(t *testing.T) {
	uc := newProductUseCase(memory.NewStore())
	ctx := context.Background()
	nombre := "x"

	_, err := uc.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "u1", "abc", dto.UpdateProductRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestEliminarProducto_ConMovimientosEsConflicto(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "REF-003", Nombre: "Filtro", Existencia: 1})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
		ID: "m1", ProductoID: created.ID, Referencia: "REF-003", Tipo: entity.MovementEgreso, Cantidad: 1, Fecha: time.Now(),
	}))

	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrConflict)
}

func TestEliminarProducto_SinDependencias(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "REF-004", Nombre: "Sensor"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestObtenerPorReferencia_IgnoraMayusculas(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateProductRequest{Referencia: "ñu-01", Nombre: "Empaque"})
	require.NoError(t, err)
	out, err := uc.GetByReferencia(ctx, "Ñu-01")
	require.NoError(t, err)
	assert.Equal(t, "ÑU-01", out.Referencia)
}
