package dto

import (
	"encoding/json"
	"time"
)

// AuditListRequest filtros de GET /auditoria.
type AuditListRequest struct {
	PageRequest
	Usuario string `query:"usuario"`
	Accion  string `query:"accion"`
	Entidad string `query:"entidad"`
	Desde   string `query:"desde"`
	Hasta   string `query:"hasta"`
}

// AuditEntryResponse registro de auditoría.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	UsuarioID *string         `json:"usuarioId"`
	Accion    string          `json:"accion"`
	Entidad   string          `json:"entidad"`
	EntidadID *string         `json:"entidadId,omitempty"`
	Detalles  json.RawMessage `json:"detalles,omitempty"`
	IP        string          `json:"ip"`
	Fecha     time.Time       `json:"fecha"`
}

// AuditListResponse lista paginada.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
