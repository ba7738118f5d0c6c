package memory

import (
	"context"
	"sort"
	"time"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo mantenimientos en memoria.
type MaintenanceRepo struct {
	s      *Store
	locked bool
}

func (r *MaintenanceRepo) Create(_ context.Context, m *entity.Maintenance) error {
	return r.s.do(r.locked, func(st *state) error {
		c := *m
		st.maintenances[m.ID] = &c
		return nil
	})
}

func (r *MaintenanceRepo) GetByID(_ context.Context, id string) (*entity.Maintenance, error) {
	var out *entity.Maintenance
	err := r.s.do(r.locked, func(st *state) error {
		if m, ok := st.maintenances[id]; ok {
			c := *m
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *MaintenanceRepo) Update(_ context.Context, m *entity.Maintenance) error {
	return r.s.do(r.locked, func(st *state) error {
		if _, ok := st.maintenances[m.ID]; !ok {
			return domain.ErrNotFound
		}
		c := *m
		st.maintenances[m.ID] = &c
		return nil
	})
}

func (r *MaintenanceRepo) Delete(_ context.Context, id string) error {
	return r.s.do(r.locked, func(st *state) error {
		if _, ok := st.maintenances[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.maintenances, id)
		return nil
	})
}

func (r *MaintenanceRepo) List(_ context.Context, f entity.MaintenanceFilter) ([]*entity.Maintenance, int, error) {
	out := r.filter(func(m *entity.Maintenance) bool {
		if f.Estado != "" && m.Estado != f.Estado {
			return false
		}
		if f.ProductoID != "" && m.ProductoID != f.ProductoID {
			return false
		}
		if f.SoloVencidos && !m.Vencido(f.Now) {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaInstalacion.After(out[j].FechaInstalacion) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r *MaintenanceRepo) ListDueBetween(_ context.Context, from, to time.Time) ([]*entity.Maintenance, error) {
	out := r.filter(func(m *entity.Maintenance) bool {
		if m.Estado != entity.MaintenanceActivo || m.FechaVencimiento == nil {
			return false
		}
		return !m.FechaVencimiento.Before(from) && m.FechaVencimiento.Before(to)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].FechaVencimiento.Before(*out[j].FechaVencimiento) })
	return out, nil
}

func (r *MaintenanceRepo) CountByProducto(_ context.Context, productoID string) (int, error) {
	return len(r.filter(func(m *entity.Maintenance) bool { return m.ProductoID == productoID })), nil
}

func (r *MaintenanceRepo) CountActive(_ context.Context, now time.Time) (int, int, error) {
	activos, vencidos := 0, 0
	for _, m := range r.filter(func(m *entity.Maintenance) bool { return m.Estado == entity.MaintenanceActivo }) {
		activos++
		if m.Vencido(now) {
			vencidos++
		}
	}
	return activos, vencidos, nil
}

func (r *MaintenanceRepo) filter(keep func(m *entity.Maintenance) bool) []*entity.Maintenance {
	var out []*entity.Maintenance
	_ = r.s.do(r.locked, func(st *state) error {
		for _, m := range st.maintenances {
			if keep(m) {
				c := *m
				out = append(out, &c)
			}
		}
		return nil
	})
	return out
}
