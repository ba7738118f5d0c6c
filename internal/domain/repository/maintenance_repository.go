package repository

import (
	"context"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// MaintenanceRepository puerto de persistencia de mantenimientos.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.Maintenance) error
	GetByID(ctx context.Context, id string) (*entity.Maintenance, error)
	Update(ctx context.Context, m *entity.Maintenance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter entity.MaintenanceFilter) ([]*entity.Maintenance, int, error)
	// ListDueBetween mantenimientos activos con vencimiento en [from, to).
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Maintenance, error)
	CountByProducto(ctx context.Context, productoID string) (int, error)
	// CountActive devuelve activos y, de ellos, vencidos a la fecha now.
	CountActive(ctx context.Context, now time.Time) (activos, vencidos int, err error)
}
