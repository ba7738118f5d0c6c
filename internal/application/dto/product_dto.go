package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Existencia es el stock inicial.
type CreateProductRequest struct {
	Referencia       string           `json:"referencia"`
	Nombre           string           `json:"nombre"`
	Equipo           string           `json:"equipo"`
	Existencia       int              `json:"existencia"`
	Detalle          string           `json:"detalle"`
	Categoria        string           `json:"categoria"`
	CostoUnitario    *decimal.Decimal `json:"costoUnitario"`
	CodigoFabricante string           `json:"codigoFabricante"`
}

// UpdateProductRequest entrada para actualizar (sin existencia ni costo: cambian por movimientos).
type UpdateProductRequest struct {
	Nombre           *string `json:"nombre"`
	Equipo           *string `json:"equipo"`
	Detalle          *string `json:"detalle"`
	Categoria        *string `json:"categoria"`
	CodigoFabricante *string `json:"codigoFabricante"`
	Motivo           string  `json:"motivo"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string           `json:"id"`
	Referencia       string           `json:"referencia"`
	Nombre           string           `json:"nombre"`
	Equipo           string           `json:"equipo"`
	Existencia       int              `json:"existencia"`
	Detalle          string           `json:"detalle"`
	Categoria        string           `json:"categoria"`
	CostoUnitario    *decimal.Decimal `json:"costoUnitario"`
	CodigoFabricante string           `json:"codigoFabricante"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductListRequest filtros de listado.
type ProductListRequest struct {
	PageRequest
	Categoria string `query:"categoria"`
	Equipo    string `query:"equipo"`
	Q         string `query:"q"`
	SinStock  bool   `query:"sinStock"`
}
