package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByReferencia(ctx context.Context, referencia string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, int, error)
	// AdjustStock suma delta a la existencia en una sola sentencia condicional y,
	// si newCost no es nil, reemplaza el costo vigente. Devuelve nil, nil cuando
	// la existencia resultante sería negativa o el producto no existe.
	AdjustStock(ctx context.Context, id string, delta int, newCost *decimal.Decimal) (*entity.Product, error)
	Summary(ctx context.Context) (entity.ProductSummary, error)
}
