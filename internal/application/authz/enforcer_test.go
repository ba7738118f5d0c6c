package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

func TestAllowed_TablaDeCapacidades(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{entity.RoleAdmin, ResourceAudit, ActionRead, true},
		{entity.RoleAdmin, ResourceMaintenance, ActionDelete, true},
		{entity.RoleAdmin, ResourceUsers, ActionCreate, true},
		{entity.RoleBodeguero, ResourceProducts, ActionCreate, true},
		{entity.RoleBodeguero, ResourceProducts, ActionDelete, false},
		{entity.RoleBodeguero, ResourceMovements, ActionCreate, true},
		{entity.RoleBodeguero, ResourceMaintenance, ActionCreate, false},
		{entity.RoleBodeguero, ResourceReports, ActionRead, true},
		{entity.RoleBodeguero, ResourceAudit, ActionRead, false},
		{entity.RoleTecnico, ResourceMaintenance, ActionCreate, true},
		{entity.RoleTecnico, ResourceMaintenance, ActionUpdate, false},
		{entity.RoleTecnico, ResourceMovements, ActionCreate, false},
		{entity.RoleTecnico, ResourceReports, ActionRead, false},
		{entity.RoleTecnico, ResourceDashboard, ActionRead, true},
		{"", ResourceProducts, ActionRead, false},
		{"invitado", ResourceProducts, ActionRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.resource+"/"+tc.action, func(t *testing.T) {
			assert.Equal(t, tc.want, e.Allowed(tc.role, tc.resource, tc.action))
		})
	}
}
