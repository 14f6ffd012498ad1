// Package models holds the client-side data model: the Role enumeration
// and the Profile aggregate merged from identity-provider and backend fields.
package models

// Role classifies a principal and drives which dashboard pages are shown.
//
// RoleUnset is distinct from RoleStudent: it means no role was ever chosen
// or the persisted value was unreadable. Resolve collapses it to the
// product default (student) at the read boundary.
type Role string

const (
	RoleUnset   Role = ""
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a stored string onto the closed enumeration. Anything
// outside the three valid variants parses as RoleUnset.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleTutor, RoleAdmin:
		return Role(s)
	default:
		return RoleUnset
	}
}

// Resolve returns the effective role: RoleUnset becomes RoleStudent,
// valid roles pass through unchanged.
func (r Role) Resolve() Role {
	if r == RoleStudent || r == RoleTutor || r == RoleAdmin {
		return r
	}
	return RoleStudent
}

// Valid reports whether r is one of the three chosen variants.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTutor || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
