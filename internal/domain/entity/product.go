package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product repuesto o insumo asociado a un equipo de la planta.
// Existencia solo cambia por movimientos y mantenimientos; CostoUnitario es el último precio de ingreso.
type Product struct {
	ID               string
	Referencia       string // única, en mayúsculas
	Nombre           string
	Equipo           string
	Existencia       int
	Detalle          string
	Categoria        string
	CostoUnitario    *decimal.Decimal
	CodigoFabricante string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValorInventario existencia × costo unitario; cero si no hay costo.
func (p *Product) ValorInventario() decimal.Decimal {
	if p.CostoUnitario == nil {
		return decimal.Zero
	}
	return p.CostoUnitario.Mul(decimal.NewFromInt(int64(p.Existencia)))
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Categoria string
	Equipo    string
	Texto     string // busca en referencia, nombre y detalle
	SinStock  bool
	Limit     int
	Offset    int
}

// ProductSummary agregados usados por el dashboard.
type ProductSummary struct {
	Productos       int
	Unidades        int
	ValorInventario decimal.Decimal
	SinStock        int
}
