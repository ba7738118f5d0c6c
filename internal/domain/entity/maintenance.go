package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de mantenimiento.
const (
	MaintenancePreventivo  = "preventivo"
	MaintenanceCorrectivo  = "correctivo"
	MaintenanceInstalacion = "instalacion"
)

// Estados de mantenimiento.
const (
	MaintenanceActivo     = "activo"
	MaintenanceCompletado = "completado"
	MaintenanceCancelado  = "cancelado"
)

// Maintenance instalación o intervención sobre un equipo que consume un repuesto.
type Maintenance struct {
	ID               string
	ProductoID       string
	Equipo           string
	Tipo             string
	FechaInstalacion time.Time
	FechaVencimiento *time.Time
	VidaUtilHoras    *int
	Tecnico          string
	Costo            decimal.Decimal
	Estado           string
	Observaciones    string
	CreadoPor        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Vencido es una etiqueta calculada: activo y con fecha de vencimiento anterior a now.
func (m *Maintenance) Vencido(now time.Time) bool {
	return m.Estado == MaintenanceActivo && m.FechaVencimiento != nil && m.FechaVencimiento.Before(now)
}

// ValidMaintenanceType indica si t es un tipo conocido.
func ValidMaintenanceType(t string) bool {
	switch t {
	case MaintenancePreventivo, MaintenanceCorrectivo, MaintenanceInstalacion:
		return true
	}
	return false
}

// ValidMaintenanceState indica si s es un estado conocido.
func ValidMaintenanceState(s string) bool {
	switch s {
	case MaintenanceActivo, MaintenanceCompletado, MaintenanceCancelado:
		return true
	}
	return false
}

// CanTransition solo admite activo → completado y activo → cancelado. Mantener el estado es válido.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return from == MaintenanceActivo && (to == MaintenanceCompletado || to == MaintenanceCancelado)
}

// MaintenanceFilter filtros de listado.
type MaintenanceFilter struct {
	Estado       string
	ProductoID   string
	SoloVencidos bool
	Now          time.Time
	Limit        int
	Offset       int
}
