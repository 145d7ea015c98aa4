package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vcorps/corps-panel/database/model"
)

func TestAdminDashboardCounts(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	jane := newTestUser("u1", "jane@redcross.org", "Secret#1")
	assert.NoError(t, userService.AddUser(jane))

	bob := newTestUser("u2", "bob@redcross.org", "Secret#2")
	bob.Status = model.StatusInactive
	assert.NoError(t, userService.AddUser(bob))

	service := DashboardService{}
	d, err := service.GetDashboard(model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, d.Role)
	if assert.NotNil(t, d.Admin) {
		// seed admin plus the two registered users
		assert.Equal(t, int64(3), d.Admin.Total)
		assert.Equal(t, int64(2), d.Admin.Active)
		assert.Equal(t, int64(1), d.Admin.Inactive)
		assert.Equal(t, int64(1), d.Admin.Admins)
	}
	assert.Empty(t, d.Stats)
}

func TestRoleDashboards(t *testing.T) {
	setup()
	defer teardown()

	service := DashboardService{}

	tests := []struct {
		role  model.UserRole
		first Stat
	}{
		{model.RoleStaff, Stat{Label: "Active Projects", Value: "8"}},
		{model.RoleVolunteer, Stat{Label: "Volunteer Hours", Value: "156"}},
		{model.RoleIntern, Stat{Label: "Days Completed", Value: "45"}},
		{model.RoleAttachee, Stat{Label: "Tasks Assigned", Value: "24"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			d, err := service.GetDashboard(tt.role)
			assert.NoError(t, err)
			assert.Equal(t, tt.role, d.Role)
			assert.Nil(t, d.Admin)
			if assert.Len(t, d.Stats, 4) {
				assert.Equal(t, tt.first, d.Stats[0])
			}
		})
	}
}
