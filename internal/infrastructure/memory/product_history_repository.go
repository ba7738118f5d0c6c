package memory

import (
	"context"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.ProductHistoryRepository = (*ProductHistoryRepo)(nil)

// ProductHistoryRepo versiones en memoria, en orden de inserción por producto.
type ProductHistoryRepo struct {
	s      *Store
	locked bool
}

func (r *ProductHistoryRepo) Last(_ context.Context, productoID string) (*entity.ProductHistory, error) {
	var out *entity.ProductHistory
	err := r.s.do(r.locked, func(st *state) error {
		if list := st.history[productoID]; len(list) > 0 {
			c := *list[len(list)-1]
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ProductHistoryRepo) Create(_ context.Context, h *entity.ProductHistory) error {
	return r.s.do(r.locked, func(st *state) error {
		for _, existing := range st.history[h.ProductoID] {
			if existing.Version == h.Version {
				return domain.ErrDuplicate
			}
		}
		c := *h
		st.history[h.ProductoID] = append(st.history[h.ProductoID], &c)
		return nil
	})
}

func (r *ProductHistoryRepo) ListByProduct(_ context.Context, productoID string) ([]*entity.ProductHistory, error) {
	var out []*entity.ProductHistory
	err := r.s.do(r.locked, func(st *state) error {
		for _, h := range st.history[productoID] {
			c := *h
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}
