package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/domain/inventory"
	"github.com/romero-panificados/inventario-api/internal/domain/repository"
)

// límite de filas por reporte.
const maxRows = 5000

// File PDF generado con su nombre de descarga.
type File struct {
	Name    string
	Content []byte
}

// UseCase arma los datos de los reportes y delega el render en Generator.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	generator Generator
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, movements repository.MovementRepository, generator Generator) *UseCase {
	return &UseCase{products: products, movements: movements, generator: generator, now: time.Now}
}

// Inventory existencias y valorización de todos los productos.
func (uc *UseCase) Inventory(ctx context.Context) (*File, error) {
	list, _, err := uc.products.List(ctx, entity.ProductFilter{Limit: maxRows})
	if err != nil {
		return nil, fmt.Errorf("reporte inventario: %w", err)
	}
	r := InventoryReport{GeneradoEn: uc.now(), Productos: list, ValorTotal: decimal.Zero}
	for _, p := range list {
		r.TotalUnidades += p.Existencia
		r.ValorTotal = r.ValorTotal.Add(p.ValorInventario())
	}
	r.ValorTotal = r.ValorTotal.Round(2)

	pdf, err := uc.generator.InventoryPDF(ctx, r)
	if err != nil {
		return nil, err
	}
	return &File{Name: fileName("inventario", r.GeneradoEn), Content: pdf}, nil
}

// Movements libro de movimientos del rango con totales por tipo.
func (uc *UseCase) Movements(ctx context.Context, desde, hasta, referencia string) (*File, error) {
	from, to, err := dto.ParseDateRange(desde, hasta, nil)
	if err != nil {
		return nil, err
	}
	ref := inventory.NormalizeReferencia(referencia)
	list, _, err := uc.movements.List(ctx, entity.MovementFilter{
		Referencia: ref,
		Desde:      from,
		Hasta:      to,
		Limit:      maxRows,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte movimientos: %w", err)
	}
	r := MovementReport{
		GeneradoEn:  uc.now(),
		Desde:       from,
		Hasta:       to,
		Referencia:  ref,
		Movimientos: list,
		Totales:     Totals(list),
	}
	pdf, err := uc.generator.MovementsPDF(ctx, r)
	if err != nil {
		return nil, err
	}
	name := "movimientos"
	if ref != "" {
		name += " " + ref
	}
	return &File{Name: fileName(name, r.GeneradoEn), Content: pdf}, nil
}

// Totals acumula movimientos, unidades y costo por tipo. Los asientos sin costo suman cero.
func Totals(list []*entity.Movement) map[string]MovementTotals {
	out := map[string]MovementTotals{
		entity.MovementIngreso: {Costo: decimal.Zero},
		entity.MovementEgreso:  {Costo: decimal.Zero},
	}
	for _, m := range list {
		t := out[m.Tipo]
		t.Movimientos++
		t.Unidades += m.Cantidad
		if m.CostoTotal != nil {
			t.Costo = t.Costo.Add(*m.CostoTotal)
		}
		out[m.Tipo] = t
	}
	return out
}

func fileName(base string, t time.Time) string {
	return slug.Make(strings.Join([]string{"reporte", base, t.Format("2006-01-02")}, " ")) + ".pdf"
}
