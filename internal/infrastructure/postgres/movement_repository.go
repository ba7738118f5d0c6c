package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, producto_id, referencia, tipo, cantidad, costo_unitario, costo_total, nota, usuario_id, categoria, fecha`

// MovementRepo libro de movimientos sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un asiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movimientos (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.Referencia, m.Tipo, m.Cantidad, m.CostoUnitario, m.CostoTotal,
		m.Nota, m.UsuarioID, m.Categoria, m.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List asientos más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, int, error) {
	var c conditions
	if f.Referencia != "" {
		c.add("referencia = $%d", f.Referencia)
	}
	if f.Tipo != "" {
		c.add("tipo = $%d", f.Tipo)
	}
	if f.Desde != nil {
		c.add("fecha >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		c.add("fecha < $%d", *f.Hasta)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movimientos`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimientos`+c.where()+` ORDER BY fecha DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Referencia, &m.Tipo, &m.Cantidad, &m.CostoUnitario,
			&m.CostoTotal, &m.Nota, &m.UsuarioID, &m.Categoria, &m.Fecha); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// CountByProducto cantidad de asientos del producto.
func (r *MovementRepo) CountByProducto(ctx context.Context, productoID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movimientos WHERE producto_id = $1`, productoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return n, nil
}

// CountByTipoSince asientos por tipo desde since.
func (r *MovementRepo) CountByTipoSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT tipo, COUNT(*) FROM movimientos WHERE fecha >= $1 GROUP BY tipo`, since)
	if err != nil {
		return nil, fmt.Errorf("count movements by type: %w", err)
	}
	defer rows.Close()
	out := map[string]int{entity.MovementIngreso: 0, entity.MovementEgreso: 0}
	for rows.Next() {
		var tipo string
		var n int
		if err := rows.Scan(&tipo, &n); err != nil {
			return nil, fmt.Errorf("scan movement count: %w", err)
		}
		out[tipo] = n
	}
	return out, rows.Err()
}
