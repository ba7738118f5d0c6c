package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada de POST /inventario/movimientos.
type RegisterMovementRequest struct {
	Referencia    string           `json:"referencia"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	CostoUnitario *decimal.Decimal `json:"costoUnitario"`
	Nota          string           `json:"nota"`
}

// MovementResponse asiento del libro.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductoID    string           `json:"productoId"`
	Referencia    string           `json:"referencia"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	CostoUnitario *decimal.Decimal `json:"costoUnitario"`
	CostoTotal    *decimal.Decimal `json:"costoTotal"`
	Nota          string           `json:"nota"`
	UsuarioID     string           `json:"usuarioId"`
	Categoria     string           `json:"categoria"`
	Fecha         time.Time        `json:"fecha"`
}

// RegisterMovementResponse movimiento registrado y producto resultante.
type RegisterMovementResponse struct {
	Movimiento MovementResponse `json:"movimiento"`
	Producto   ProductResponse  `json:"producto"`
}

// MovementListRequest filtros del libro.
type MovementListRequest struct {
	PageRequest
	Referencia string `query:"referencia"`
	Tipo       string `query:"tipo"`
	Desde      string `query:"desde"`
	Hasta      string `query:"hasta"`
}

// MovementListResponse lista paginada del libro.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
