package ports

import (
	"context"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// ProductCache define el puerto de salida para el cache de lectura de productos.
// Los casos de uso invalidan la entrada tras cada escritura que confirma; un fallo
// del cache nunca debe romper la operación, por eso los métodos no devuelven error.
type ProductCache interface {
	Get(ctx context.Context, id string) (*entity.Product, bool)
	Set(ctx context.Context, p *entity.Product)
	Invalidate(ctx context.Context, id string)
}
