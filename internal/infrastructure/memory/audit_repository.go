package memory

import (
	"context"
	"sort"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo registros de auditoría en memoria.
type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.s.do(false, func(st *state) error {
		c := *e
		st.audit = append(st.audit, &c)
		return nil
	})
}

func (r *AuditRepo) List(_ context.Context, f entity.AuditFilter) ([]*entity.AuditEntry, int, error) {
	var out []*entity.AuditEntry
	_ = r.s.do(false, func(st *state) error {
		for _, e := range st.audit {
			if f.UsuarioID != "" && (e.UsuarioID == nil || *e.UsuarioID != f.UsuarioID) {
				continue
			}
			if f.Accion != "" && e.Accion != f.Accion {
				continue
			}
			if f.Entidad != "" && e.Entidad != f.Entidad {
				continue
			}
			if f.Desde != nil && e.Fecha.Before(*f.Desde) {
				continue
			}
			if f.Hasta != nil && !e.Fecha.Before(*f.Hasta) {
				continue
			}
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}
