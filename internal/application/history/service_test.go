package history

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
)

func newProduct(t *testing.T, store *memory.Store) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: "p1", Referencia: "REF-001", Nombre: "Rodamiento", Existencia: 10, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func TestCapture_VersionesConsecutivas(t *testing.T) {
	store := memory.NewStore()
	p := newProduct(t, store)
	svc := NewService(store.Products(), store.History())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Run(ctx, func(tx repository.Tx) error {
			cur, err := tx.Products.GetForUpdate(ctx, p.ID)
			if err != nil {
				return err
			}
			cur.Nombre = "Rodamiento v" + strconv.Itoa(i+1)
			if err := tx.Products.Update(ctx, cur); err != nil {
				return err
			}
			_, err = svc.Capture(ctx, tx, p.ID, "u1", "ajuste")
			return err
		})
		require.NoError(t, err)
	}

	out, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, out.Versiones, 3)
	for i, v := range out.Versiones {
		assert.Equal(t, i+1, v.Version)
	}
	assert.Equal(t, entity.ChangeCreado, out.Versiones[0].Cambios["nombre"].Tipo)
	assert.Equal(t, entity.ChangeModificado, out.Versiones[1].Cambios["nombre"].Tipo)
	assert.JSONEq(t, `"Rodamiento v2"`, string(out.Versiones[1].Cambios["nombre"].Nuevo))
	assert.NotContains(t, out.Versiones[1].Cambios, "existencia")
}

func TestCapture_SegundaVersionDetectaCampoAgregado(t *testing.T) {
	store := memory.NewStore()
	p := newProduct(t, store)
	svc := NewService(store.Products(), store.History())
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(tx repository.Tx) error {
		_, err := svc.Capture(ctx, tx, p.ID, "u1", "")
		return err
	}))
	require.NoError(t, store.Run(ctx, func(tx repository.Tx) error {
		cur, _ := tx.Products.GetForUpdate(ctx, p.ID)
		cur.Equipo = "Horno 2"
		if err := tx.Products.Update(ctx, cur); err != nil {
			return err
		}
		_, err := svc.Capture(ctx, tx, p.ID, "u2", "asignado a horno")
		return err
	}))

	out, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, out.Versiones, 2)
	c := out.Versiones[1].Cambios
	require.Len(t, c, 1)
	assert.Equal(t, entity.ChangeAgregado, c["equipo"].Tipo)
	assert.Equal(t, json.RawMessage(`"Horno 2"`), c["equipo"].Nuevo)
	assert.Equal(t, "asignado a horno", out.Versiones[1].Motivo)
}

func TestCapture_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Products(), store.History())
	ctx := context.Background()

	err := store.Run(ctx, func(tx repository.Tx) error {
		_, err := svc.Capture(ctx, tx, "no-existe", "u1", "")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.List(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
