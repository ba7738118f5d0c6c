package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s      *Store
	locked bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.do(r.locked, func(st *state) error {
		for _, existing := range st.products {
			if existing.Referencia == p.Referencia {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = copyProduct(p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(r.locked, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByReferencia(_ context.Context, referencia string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(r.locked, func(st *state) error {
		for _, p := range st.products {
			if p.Referencia == referencia {
				out = copyProduct(p)
				break
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID; la transacción ya tiene el lock global.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.do(r.locked, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Nombre = p.Nombre
		cur.Equipo = p.Equipo
		cur.Detalle = p.Detalle
		cur.Categoria = p.Categoria
		cur.CodigoFabricante = p.CodigoFabricante
		cur.UpdatedAt = p.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.do(r.locked, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, m := range st.movements {
			if m.ProductoID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range st.maintenances {
			if m.ProductoID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f entity.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	texto := strings.ToLower(strings.TrimSpace(f.Texto))
	err := r.s.do(r.locked, func(st *state) error {
		for _, p := range st.products {
			if f.Categoria != "" && p.Categoria != f.Categoria {
				continue
			}
			if f.Equipo != "" && p.Equipo != f.Equipo {
				continue
			}
			if f.SinStock && p.Existencia != 0 {
				continue
			}
			if texto != "" && !strings.Contains(strings.ToLower(p.Referencia+" "+p.Nombre+" "+p.Detalle), texto) {
				continue
			}
			out = append(out, copyProduct(p))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Referencia < out[j].Referencia })
	return paginate(out, f.Limit, f.Offset), len(out), err
}

func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int, newCost *decimal.Decimal) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(r.locked, func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.Existencia+delta < 0 {
			return nil
		}
		p.Existencia += delta
		if newCost != nil {
			c := *newCost
			p.CostoUnitario = &c
		}
		out = copyProduct(p)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Summary(_ context.Context) (entity.ProductSummary, error) {
	s := entity.ProductSummary{ValorInventario: decimal.Zero}
	err := r.s.do(r.locked, func(st *state) error {
		for _, p := range st.products {
			s.Productos++
			s.Unidades += p.Existencia
			s.ValorInventario = s.ValorInventario.Add(p.ValorInventario())
			if p.Existencia == 0 {
				s.SinStock++
			}
		}
		return nil
	})
	return s, err
}
