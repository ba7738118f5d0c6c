package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

// TotalCost costo unitario × cantidad redondeado a 2 decimales; nil si el costo unitario es desconocido.
func TotalCost(unitCost *decimal.Decimal, cantidad int) *decimal.Decimal {
	if unitCost == nil {
		return nil
	}
	total := unitCost.Mul(decimal.NewFromInt(int64(cantidad))).Round(2)
	return &total
}

// LedgerUnitCost costo unitario que queda en el asiento.
// Ingreso: el suministrado (o nil). Egreso: el suministrado o, si falta, el costo vigente del producto.
func LedgerUnitCost(tipo string, supplied, standing *decimal.Decimal) *decimal.Decimal {
	if supplied != nil {
		c := *supplied
		return &c
	}
	if tipo == entity.MovementEgreso && standing != nil {
		c := *standing
		return &c
	}
	return nil
}

// NewStandingCost nuevo costo vigente tras un ingreso: solo un costo > 0 lo reemplaza.
func NewStandingCost(tipo string, supplied *decimal.Decimal) *decimal.Decimal {
	if tipo != entity.MovementIngreso || supplied == nil || !supplied.IsPositive() {
		return nil
	}
	c := *supplied
	return &c
}
