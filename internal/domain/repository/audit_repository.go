package repository

import (
	"context"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// AuditRepository registros de auditoría.
type AuditRepository interface {
	Create(ctx context.Context, e *entity.AuditEntry) error
	List(ctx context.Context, filter entity.AuditFilter) ([]*entity.AuditEntry, int, error)
}
