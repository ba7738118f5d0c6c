package entity

import (
	"encoding/json"
	"time"
)

// Clases de cambio por campo.
const (
	ChangeCreado     = "creado"
	ChangeAgregado   = "agregado"
	ChangeEliminado  = "eliminado"
	ChangeModificado = "modificado"
)

// Snapshot valores JSON de los campos versionados de un producto.
type Snapshot map[string]json.RawMessage

// FieldChange cambio de un campo respecto a la versión anterior.
type FieldChange struct {
	Tipo     string          `json:"tipo"`
	Anterior json.RawMessage `json:"anterior,omitempty"`
	Nuevo    json.RawMessage `json:"nuevo,omitempty"`
}

// ProductHistory versión de un producto. Version empieza en 1 y es única por producto.
type ProductHistory struct {
	ID         string
	ProductoID string
	Version    int
	Snapshot   Snapshot
	Cambios    map[string]FieldChange
	EditadoPor string
	Motivo     string
	CreatedAt  time.Time
}
