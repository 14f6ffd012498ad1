package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"student", RoleStudent},
		{"tutor", RoleTutor},
		{"admin", RoleAdmin},
		{"", RoleUnset},
		{"Teacher", RoleUnset},
		{"ADMIN", RoleUnset},
		{"guardian", RoleUnset},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ParseRole(tc.in), "input %q", tc.in)
	}
}

func TestRoleResolve_UnsetDefaultsToStudent(t *testing.T) {
	require.Equal(t, RoleStudent, RoleUnset.Resolve())
	require.Equal(t, RoleStudent, Role("bogus").Resolve())
}

func TestRoleResolve_ValidPassThrough(t *testing.T) {
	require.Equal(t, RoleTutor, RoleTutor.Resolve())
	require.Equal(t, RoleAdmin, RoleAdmin.Resolve())
	require.Equal(t, RoleStudent, RoleStudent.Resolve())
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleTutor.Valid())
	require.False(t, RoleUnset.Valid())
	require.False(t, Role("owner").Valid())
}
