package repository

import (
	"context"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// MovementRepository libro de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, int, error)
	CountByProducto(ctx context.Context, productoID string) (int, error)
	// CountByTipoSince cantidad de movimientos por tipo desde since.
	CountByTipoSince(ctx context.Context, since time.Time) (map[string]int, error)
}
