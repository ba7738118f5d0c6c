package memory

import (
	"context"
	"sort"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct {
	s      *Store
	locked bool
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.s.do(r.locked, func(st *state) error {
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.Movement, int, error) {
	var out []*entity.Movement
	err := r.s.do(r.locked, func(st *state) error {
		for _, m := range st.movements {
			if f.Referencia != "" && m.Referencia != f.Referencia {
				continue
			}
			if f.Tipo != "" && m.Tipo != f.Tipo {
				continue
			}
			if f.Desde != nil && m.Fecha.Before(*f.Desde) {
				continue
			}
			if f.Hasta != nil && !m.Fecha.Before(*f.Hasta) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return paginate(out, f.Limit, f.Offset), len(out), err
}

func (r *MovementRepo) CountByProducto(_ context.Context, productoID string) (int, error) {
	n := 0
	err := r.s.do(r.locked, func(st *state) error {
		for _, m := range st.movements {
			if m.ProductoID == productoID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *MovementRepo) CountByTipoSince(_ context.Context, since time.Time) (map[string]int, error) {
	out := map[string]int{entity.MovementIngreso: 0, entity.MovementEgreso: 0}
	err := r.s.do(r.locked, func(st *state) error {
		for _, m := range st.movements {
			if !m.Fecha.Before(since) {
				out[m.Tipo]++
			}
		}
		return nil
	})
	return out, err
}
