package model

// Role is a user's portal role.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleStaff  Role = "STAFF"
	RoleClient Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// IsTeam reports whether the role belongs to studio personnel (ADMIN or STAFF).
func (r Role) IsTeam() bool {
	return r == RoleAdmin || r == RoleStaff
}
