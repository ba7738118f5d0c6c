package dto

import (
	"encoding/json"
	"time"
)

// FieldChangeResponse cambio de un campo.
type FieldChangeResponse struct {
	Tipo     string          `json:"tipo"`
	Anterior json.RawMessage `json:"anterior,omitempty"`
	Nuevo    json.RawMessage `json:"nuevo,omitempty"`
}

// ProductVersionResponse versión de un producto con su diff.
type ProductVersionResponse struct {
	Version    int                            `json:"version"`
	Snapshot   map[string]json.RawMessage     `json:"snapshot"`
	Cambios    map[string]FieldChangeResponse `json:"cambios"`
	EditadoPor string                         `json:"editadoPor"`
	Motivo     string                         `json:"motivo,omitempty"`
	Fecha      time.Time                      `json:"fecha"`
}

// ProductHistoryResponse historial completo en orden ascendente.
type ProductHistoryResponse struct {
	ProductoID string                   `json:"productoId"`
	Versiones  []ProductVersionResponse `json:"versiones"`
}
