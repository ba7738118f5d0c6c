// Package authz tabla única de capacidades por rol, evaluada con casbin.
package authz

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

//go:embed model.conf
var modelText string

// Recursos protegidos.
const (
	ResourceProducts    = "products"
	ResourceMovements   = "movements"
	ResourceMaintenance = "maintenance"
	ResourceHistory     = "history"
	ResourceReports     = "reports"
	ResourceDashboard   = "dashboard"
	ResourceAudit       = "audit"
	ResourceUsers       = "users"
)

// Acciones.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const wildcard = "*"

// Capability permiso (recurso, acción) de un rol.
type Capability struct {
	Resource string
	Action   string
}

// Capabilities tabla rol → capacidades. admin tiene todo.
var Capabilities = map[string][]Capability{
	entity.RoleAdmin: {
		{wildcard, wildcard},
	},
	entity.RoleBodeguero: {
		{ResourceProducts, ActionRead},
		{ResourceProducts, ActionCreate},
		{ResourceProducts, ActionUpdate},
		{ResourceMovements, ActionRead},
		{ResourceMovements, ActionCreate},
		{ResourceMaintenance, ActionRead},
		{ResourceHistory, ActionRead},
		{ResourceReports, ActionRead},
		{ResourceDashboard, ActionRead},
	},
	entity.RoleTecnico: {
		{ResourceProducts, ActionRead},
		{ResourceMovements, ActionRead},
		{ResourceMaintenance, ActionRead},
		{ResourceMaintenance, ActionCreate},
		{ResourceHistory, ActionRead},
		{ResourceDashboard, ActionRead},
	},
}

// Enforcer decide si un rol puede ejecutar una acción sobre un recurso.
type Enforcer struct {
	e *casbin.SyncedEnforcer
}

// NewEnforcer carga el modelo embebido y la tabla Capabilities.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: modelo: %w", err)
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}
	for role, caps := range Capabilities {
		for _, c := range caps {
			if _, err := e.AddPolicy(role, c.Resource, c.Action); err != nil {
				return nil, fmt.Errorf("authz: política %s %s %s: %w", role, c.Resource, c.Action, err)
			}
		}
	}
	return &Enforcer{e: e}, nil
}

// Allowed indica si role tiene la capacidad (resource, action). Un error de evaluación niega.
func (a *Enforcer) Allowed(role, resource, action string) bool {
	if role == "" {
		return false
	}
	ok, err := a.e.Enforce(role, resource, action)
	return err == nil && ok
}
