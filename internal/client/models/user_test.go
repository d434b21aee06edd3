package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole(" Developer ")
	require.NoError(t, err)
	assert.Equal(t, RoleDeveloper, r)

	_, err = ParseRole("viewer")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_DashboardRouteAndNav(t *testing.T) {
	assert.Equal(t, RouteAdminDashboard, RoleAdmin.DashboardRoute())
	assert.Equal(t, RouteDeveloperDashboard, RoleDeveloper.DashboardRoute())

	admin := RoleAdmin.NavItems()
	require.Len(t, admin, 6)
	assert.Equal(t, "/dashboard/admin/users", admin[1].Href)

	dev := RoleDeveloper.NavItems()
	require.Len(t, dev, 4)
	assert.Equal(t, "Projects", dev[1].Label)

	// callers get a copy
	dev[0].Label = "changed"
	assert.Equal(t, "Dashboard", RoleDeveloper.NavItems()[0].Label)
}

func TestUser_Validate(t *testing.T) {
	u := &User{ID: "1", Email: "a@b.c", Role: RoleDeveloper}
	require.NoError(t, u.Validate())

	u.Role = "viewer"
	require.ErrorIs(t, u.Validate(), ErrUnknownRole)

	require.Error(t, (&User{Role: RoleAdmin}).Validate())

	var nilUser *User
	require.Error(t, nilUser.Validate())
}
