package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MovementIngreso = "ingreso"
	MovementEgreso  = "egreso"
)

// Movement asiento inmutable del libro de movimientos.
// Referencia y Categoria se copian del producto al momento del registro.
type Movement struct {
	ID            string
	ProductoID    string
	Referencia    string
	Tipo          string
	Cantidad      int
	CostoUnitario *decimal.Decimal
	CostoTotal    *decimal.Decimal // nil cuando el costo unitario es desconocido
	Nota          string
	UsuarioID     string
	Categoria     string
	Fecha         time.Time
}

// ValidMovementType indica si t es ingreso o egreso.
func ValidMovementType(t string) bool {
	return t == MovementIngreso || t == MovementEgreso
}

// MovementFilter filtros de listado del libro.
type MovementFilter struct {
	Referencia string
	Tipo       string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}
