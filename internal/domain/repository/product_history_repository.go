package repository

import (
	"context"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// ProductHistoryRepository versiones de productos (solo inserción).
type ProductHistoryRepository interface {
	// Last devuelve la última versión del producto o nil si no tiene.
	Last(ctx context.Context, productoID string) (*entity.ProductHistory, error)
	Create(ctx context.Context, h *entity.ProductHistory) error
	ListByProduct(ctx context.Context, productoID string) ([]*entity.ProductHistory, error)
}
