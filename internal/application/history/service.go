package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
	"github.com/romero-panificados/inventario-api/internal/domain/versioning"
)

// Service versionado de productos.
type Service struct {
	products repository.ProductRepository
	history  repository.ProductHistoryRepository
	now      func() time.Time
}

// NewService construye el servicio con los repositorios fuera de transacción (para lecturas).
func NewService(products repository.ProductRepository, history repository.ProductHistoryRepository) *Service {
	return &Service{products: products, history: history, now: time.Now}
}

// Capture agrega una versión del producto dentro de la transacción tx.
// Bloquea la fila del producto para serializar las versiones: la nueva es la última + 1.
func (s *Service) Capture(ctx context.Context, tx repository.Tx, productID, editor, reason string) (*entity.ProductHistory, error) {
	p, err := tx.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("historial: bloquear producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	last, err := tx.History.Last(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("historial: última versión: %w", err)
	}

	snap := versioning.SnapshotOf(p)
	version := 1
	var prev entity.Snapshot
	if last != nil {
		version = last.Version + 1
		prev = last.Snapshot
	}
	h := &entity.ProductHistory{
		ID:         uuid.New().String(),
		ProductoID: productID,
		Version:    version,
		Snapshot:   snap,
		Cambios:    versioning.Diff(prev, snap),
		EditadoPor: editor,
		Motivo:     reason,
		CreatedAt:  s.now(),
	}
	if err := tx.History.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("historial: guardar versión %d: %w", version, err)
	}
	return h, nil
}

// List devuelve todas las versiones del producto en orden ascendente.
func (s *Service) List(ctx context.Context, productID string) (*dto.ProductHistoryResponse, error) {
	if !domain.ValidID(productID) {
		return nil, domain.ErrNotFound
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := s.history.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductHistoryResponse{ProductoID: productID, Versiones: make([]dto.ProductVersionResponse, 0, len(list))}
	for _, h := range list {
		cambios := make(map[string]dto.FieldChangeResponse, len(h.Cambios))
		for field, c := range h.Cambios {
			cambios[field] = dto.FieldChangeResponse{Tipo: c.Tipo, Anterior: c.Anterior, Nuevo: c.Nuevo}
		}
		out.Versiones = append(out.Versiones, dto.ProductVersionResponse{
			Version:    h.Version,
			Snapshot:   h.Snapshot,
			Cambios:    cambios,
			EditadoPor: h.EditadoPor,
			Motivo:     h.Motivo,
			Fecha:      h.CreatedAt,
		})
	}
	return out, nil
}
