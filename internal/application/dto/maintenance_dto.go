package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaintenanceRequest entrada de POST /mantenimientos. Estado vacío = activo.
type CreateMaintenanceRequest struct {
	ProductoID       string          `json:"productoId"`
	Equipo           string          `json:"equipo"`
	Tipo             string          `json:"tipo"`
	FechaInstalacion *time.Time      `json:"fechaInstalacion"`
	FechaVencimiento *time.Time      `json:"fechaVencimiento"`
	VidaUtilHoras    *int            `json:"vidaUtilHoras"`
	Tecnico          string          `json:"tecnico"`
	Costo            decimal.Decimal `json:"costo"`
	Estado           string          `json:"estado"`
	Observaciones    string          `json:"observaciones"`
}

// UpdateMaintenanceRequest entrada de PUT /mantenimientos/:id.
type UpdateMaintenanceRequest struct {
	Equipo           *string          `json:"equipo"`
	Tipo             *string          `json:"tipo"`
	FechaInstalacion *time.Time       `json:"fechaInstalacion"`
	FechaVencimiento *time.Time       `json:"fechaVencimiento"`
	VidaUtilHoras    *int             `json:"vidaUtilHoras"`
	Tecnico          *string          `json:"tecnico"`
	Costo            *decimal.Decimal `json:"costo"`
	Estado           *string          `json:"estado"`
	Observaciones    *string          `json:"observaciones"`
}

// MaintenanceResponse salida de un mantenimiento con la etiqueta calculada vencido.
type MaintenanceResponse struct {
	ID               string          `json:"id"`
	ProductoID       string          `json:"productoId"`
	Equipo           string          `json:"equipo"`
	Tipo             string          `json:"tipo"`
	FechaInstalacion time.Time       `json:"fechaInstalacion"`
	FechaVencimiento *time.Time      `json:"fechaVencimiento"`
	VidaUtilHoras    *int            `json:"vidaUtilHoras"`
	Tecnico          string          `json:"tecnico"`
	Costo            decimal.Decimal `json:"costo"`
	Estado           string          `json:"estado"`
	Vencido          bool            `json:"vencido"`
	Observaciones    string          `json:"observaciones"`
	CreadoPor        string          `json:"creadoPor"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CreateMaintenanceResponse incluye la advertencia de stock.
type CreateMaintenanceResponse struct {
	Mantenimiento MaintenanceResponse `json:"mantenimiento"`
	SinStock      bool                `json:"sinStock"`
	Advertencia   string              `json:"advertencia,omitempty"`
}

// MaintenanceListRequest filtros de listado.
type MaintenanceListRequest struct {
	PageRequest
	Estado     string `query:"estado"`
	ProductoID string `query:"productoId"`
	Vencidos   bool   `query:"vencidos"`
}

// MaintenanceListResponse lista paginada.
type MaintenanceListResponse struct {
	Items []MaintenanceResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
