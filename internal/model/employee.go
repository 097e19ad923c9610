package model

import "strings"

// Employee is a staff member allowed to sign in to the scanner app.
//
// Fields:
//  ID           – employees.id
//  Name         – display name shown on the dashboard.
//  Email        – unique login email (stored lower-case).
//  Role         – staff role (e.g. USHER, MANAGER).
//  PasswordHash – bcrypt hash; never serialized.
type Employee struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Staff roles accepted by the API.
const (
	RoleUsher   = "USHER"
	RoleManager = "MANAGER"
)

// StaffRole maps a stored role onto one the API accepts.  Any matched
// employee may scan, so everything other than MANAGER is an usher.
func StaffRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleManager) {
		return RoleManager
	}
	return RoleUsher
}
