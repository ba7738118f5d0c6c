package entity

import (
	"encoding/json"
	"time"
)

// Acciones de auditoría.
const (
	AuditCreate = "CREATE"
	AuditModify = "MODIFY"
	AuditDelete = "DELETE"
	AuditLogin  = "LOGIN"
	AuditLogout = "LOGOUT"
	AuditOther  = "OTHER"
)

// ValidAuditAction indica si a pertenece a la enumeración.
func ValidAuditAction(a string) bool {
	switch a {
	case AuditCreate, AuditModify, AuditDelete, AuditLogin, AuditLogout, AuditOther:
		return true
	}
	return false
}

// AuditEntry registro de quién hizo qué. UsuarioID solo puede ser nil en LOGIN.
type AuditEntry struct {
	ID        string
	UsuarioID *string
	Accion    string
	Entidad   string
	EntidadID *string
	Detalles  json.RawMessage
	IP        string
	Fecha     time.Time
}

// AuditFilter filtros de consulta de auditoría.
type AuditFilter struct {
	UsuarioID string
	Accion    string
	Entidad   string
	Desde     *time.Time
	Hasta     *time.Time
	Limit     int
	Offset    int
}
