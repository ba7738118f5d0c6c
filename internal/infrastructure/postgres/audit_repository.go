package postgres

import (
	"context"
	"fmt"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, usuario_id, accion, entidad, entidad_id, detalles, ip, fecha`

// AuditRepo registros de auditoría sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el repositorio.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta un registro.
func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	var detalles []byte
	if len(e.Detalles) > 0 {
		detalles = e.Detalles
	}
	_, err := r.q.Exec(ctx, `INSERT INTO auditoria (`+auditColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.UsuarioID, e.Accion, e.Entidad, e.EntidadID, detalles, e.IP, e.Fecha)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// List registros más recientes primero.
func (r *AuditRepo) List(ctx context.Context, f entity.AuditFilter) ([]*entity.AuditEntry, int, error) {
	var c conditions
	if f.UsuarioID != "" {
		c.add("usuario_id = $%d", f.UsuarioID)
	}
	if f.Accion != "" {
		c.add("accion = $%d", f.Accion)
	}
	if f.Entidad != "" {
		c.add("entidad = $%d", f.Entidad)
	}
	if f.Desde != nil {
		c.add("fecha >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		c.add("fecha < $%d", *f.Hasta)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM auditoria`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit: %w", err)
	}
	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+auditColumns+` FROM auditoria`+c.where()+` ORDER BY fecha DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var detalles []byte
		if err := rows.Scan(&e.ID, &e.UsuarioID, &e.Accion, &e.Entidad, &e.EntidadID, &detalles, &e.IP, &e.Fecha); err != nil {
			return nil, 0, fmt.Errorf("scan audit: %w", err)
		}
		e.Detalles = detalles
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
