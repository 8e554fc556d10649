package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanForRole(t *testing.T) {
	tests := []struct {
		role      Role
		wantPlan  string
		wantPrice string
	}{
		{RoleElectrician, "electrician-monthly", "price_electrician_monthly"},
		{RoleApprentice, "apprentice-monthly", "price_apprentice_monthly"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			selection, err := PlanForRole(tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlan, selection.PlanID)
			assert.Equal(t, tt.wantPrice, selection.PriceID)
		})
	}
}

func TestPlanForRoleRejectsUnmappedRoles(t *testing.T) {
	for _, role := range []Role{RoleEmployer, "", "admin"} {
		_, err := PlanForRole(role)
		assert.Error(t, err, "role %q", role)
	}
}

func TestSelectableRolesHavePlans(t *testing.T) {
	// Every role a user can pick at the profile step must map to a plan.
	for _, role := range SelectableRoles {
		_, err := PlanForRole(role)
		assert.NoError(t, err, "role %q", role)
	}
}
