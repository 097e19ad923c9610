package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffRole(t *testing.T) {
	assert.Equal(t, RoleManager, StaffRole("MANAGER"))
	assert.Equal(t, RoleManager, StaffRole(" manager "))
	assert.Equal(t, RoleUsher, StaffRole("USHER"))
	assert.Equal(t, RoleUsher, StaffRole("STAFF"))
	assert.Equal(t, RoleUsher, StaffRole(""))
}
