package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*ProductHistoryRepo)(nil)

const historyColumns = `id, producto_id, version, snapshot, cambios, editado_por, motivo, created_at`

// ProductHistoryRepo versiones de productos sobre PostgreSQL (snapshot y cambios en JSONB).
type ProductHistoryRepo struct {
	q Querier
}

// NewProductHistoryRepository construye el repositorio. Pasar pool o tx.
func NewProductHistoryRepository(q Querier) *ProductHistoryRepo {
	return &ProductHistoryRepo{q: q}
}

func scanHistory(row pgx.Row) (*entity.ProductHistory, error) {
	var h entity.ProductHistory
	var snapshot, cambios []byte
	if err := row.Scan(&h.ID, &h.ProductoID, &h.Version, &snapshot, &cambios, &h.EditadoPor, &h.Motivo, &h.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &h.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := json.Unmarshal(cambios, &h.Cambios); err != nil {
		return nil, fmt.Errorf("decode cambios: %w", err)
	}
	return &h, nil
}

// Last última versión del producto; nil si no tiene.
func (r *ProductHistoryRepo) Last(ctx context.Context, productoID string) (*entity.ProductHistory, error) {
	h, err := scanHistory(r.q.QueryRow(ctx,
		`SELECT `+historyColumns+` FROM historial_productos WHERE producto_id = $1 ORDER BY version DESC LIMIT 1`,
		productoID))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last history: %w", err)
	}
	return h, nil
}

// Create inserta una versión. Versión repetida para el producto → ErrDuplicate.
func (r *ProductHistoryRepo) Create(ctx context.Context, h *entity.ProductHistory) error {
	snapshot, err := json.Marshal(h.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	cambios, err := json.Marshal(h.Cambios)
	if err != nil {
		return fmt.Errorf("encode cambios: %w", err)
	}
	_, err = r.q.Exec(ctx, `INSERT INTO historial_productos (`+historyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.ProductoID, h.Version, snapshot, cambios, h.EditadoPor, h.Motivo, h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListByProduct versiones en orden ascendente.
func (r *ProductHistoryRepo) ListByProduct(ctx context.Context, productoID string) ([]*entity.ProductHistory, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+historyColumns+` FROM historial_productos WHERE producto_id = $1 ORDER BY version`, productoID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
