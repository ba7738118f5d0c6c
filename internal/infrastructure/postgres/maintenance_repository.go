package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

const maintenanceColumns = `id, producto_id, equipo, tipo, fecha_instalacion, fecha_vencimiento, vida_util_horas,
	tecnico, costo, estado, observaciones, creado_por, created_at, updated_at`

// MaintenanceRepo mantenimientos sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el repositorio. Pasar pool o tx.
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

func scanMaintenance(row pgx.Row) (*entity.Maintenance, error) {
	var m entity.Maintenance
	err := row.Scan(&m.ID, &m.ProductoID, &m.Equipo, &m.Tipo, &m.FechaInstalacion, &m.FechaVencimiento,
		&m.VidaUtilHoras, &m.Tecnico, &m.Costo, &m.Estado, &m.Observaciones, &m.CreadoPor,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un mantenimiento.
func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.Maintenance) error {
	query := `INSERT INTO mantenimientos (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.Equipo, m.Tipo, m.FechaInstalacion, m.FechaVencimiento, m.VidaUtilHoras,
		m.Tecnico, m.Costo, m.Estado, m.Observaciones, m.CreadoPor, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance: %w", err)
	}
	return nil
}

// GetByID obtiene un mantenimiento; nil si no existe.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*entity.Maintenance, error) {
	m, err := scanMaintenance(r.q.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM mantenimientos WHERE id = $1`, id))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance: %w", err)
	}
	return m, nil
}

// Update reemplaza los campos editables.
func (r *MaintenanceRepo) Update(ctx context.Context, m *entity.Maintenance) error {
	query := `
		UPDATE mantenimientos SET equipo = $2, tipo = $3, fecha_instalacion = $4, fecha_vencimiento = $5,
			vida_util_horas = $6, tecnico = $7, costo = $8, estado = $9, observaciones = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Equipo, m.Tipo, m.FechaInstalacion, m.FechaVencimiento, m.VidaUtilHoras,
		m.Tecnico, m.Costo, m.Estado, m.Observaciones, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un mantenimiento.
func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM mantenimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List mantenimientos más recientes primero.
func (r *MaintenanceRepo) List(ctx context.Context, f entity.MaintenanceFilter) ([]*entity.Maintenance, int, error) {
	var c conditions
	if f.Estado != "" {
		c.add("estado = $%d", f.Estado)
	}
	if f.ProductoID != "" {
		c.add("producto_id = $%d", f.ProductoID)
	}
	if f.SoloVencidos {
		c.add("estado = 'activo' AND fecha_vencimiento < $%d", f.Now)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM mantenimientos`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenance: %w", err)
	}
	limit, args := c.page(f.Limit, f.Offset)
	list, err := r.query(ctx, `SELECT `+maintenanceColumns+` FROM mantenimientos`+c.where()+` ORDER BY fecha_instalacion DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListDueBetween activos con vencimiento en [from, to).
func (r *MaintenanceRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*entity.Maintenance, error) {
	return r.query(ctx, `SELECT `+maintenanceColumns+` FROM mantenimientos
		WHERE estado = 'activo' AND fecha_vencimiento >= $1 AND fecha_vencimiento < $2
		ORDER BY fecha_vencimiento`, from, to)
}

func (r *MaintenanceRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Maintenance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()
	var list []*entity.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByProducto mantenimientos vinculados al producto.
func (r *MaintenanceRepo) CountByProducto(ctx context.Context, productoID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM mantenimientos WHERE producto_id = $1`, productoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count maintenance by product: %w", err)
	}
	return n, nil
}

// CountActive activos y vencidos.
func (r *MaintenanceRepo) CountActive(ctx context.Context, now time.Time) (int, int, error) {
	var activos, vencidos int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE fecha_vencimiento < $1)
		FROM mantenimientos WHERE estado = 'activo'`, now).Scan(&activos, &vencidos)
	if err != nil {
		return 0, 0, fmt.Errorf("count active maintenance: %w", err)
	}
	return activos, vencidos, nil
}
